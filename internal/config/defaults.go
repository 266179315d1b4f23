package config

import (
	_ "embed"
)

//go:embed defaults/opdozitz.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Terrain: TerrainConfig{
			TileSize:      50,
			GirderWidth:   3,
			MoveStep:      5,
			SlopeFraction: 0.4,
			SlopeGrade:    0.5,
			ArcSteps:      2,
			SpikesSize:    12,
			SpikesEdge:    5,
		},
		Zit: ZitConfig{
			Size:               20,
			AngleIncrement:     0.006,
			FallForce:          0.03,
			FatalVelocity:      9,
			MaxAngleStep:       0.7,
			ContactSlack:       1.01,
			DieRadius:          0.5,
			FallAngle:          0.4,
			ExplosionFrames:    9,
			ExplosionFrameTime: 80,
		},
		World: WorldConfig{
			ZitsPerLevel:      20,
			PassHome:          10,
			BaseSpawnInterval: 3000,
			MinSpawnInterval:  400,
			LevelDecay:        0.97,
			RateDecay:         0.8,
			MaxRate:           10,
			SpeedPerLevel:     0.05,
			ZoomFactor:        4,
			DelayStep:         500,
			ColumnsMoveZits:   true,
			Frame:             FrameConfig{X: 25, Y: 25, Width: 550, Height: 750},
			ColumnLeft:        25,
			ColumnTop:         0,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}
