// Package config provides YAML-based configuration loading and difficulty
// presets for the game.
package config

import (
	"math"

	"github.com/vovakirdan/opdozitz/internal/actor"
	"github.com/vovakirdan/opdozitz/internal/geom"
	"github.com/vovakirdan/opdozitz/internal/terrain"
	"github.com/vovakirdan/opdozitz/internal/world"
)

// Config contains all tunable game constants.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Zit     ZitConfig     `yaml:"zit"`
	World   WorldConfig   `yaml:"world"`
	Audio   AudioConfig   `yaml:"audio"`
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// TerrainConfig defines tile geometry.
type TerrainConfig struct {
	TileSize      int     `yaml:"tile_size"`
	GirderWidth   int     `yaml:"girder_width"`
	MoveStep      int     `yaml:"move_step"` // pixels per tick while a column shifts
	SlopeFraction float64 `yaml:"slope_fraction"`
	SlopeGrade    float64 `yaml:"slope_grade"`
	ArcSteps      int     `yaml:"arc_steps"`
	SpikesSize    int     `yaml:"spikes_size"`
	SpikesEdge    int     `yaml:"spikes_edge"`
}

// ZitConfig defines the rolling simulation parameters.
type ZitConfig struct {
	Size               float64 `yaml:"size"`
	AngleIncrement     float64 `yaml:"angle_increment"` // radians per ms
	FallForce          float64 `yaml:"fall_force"`
	FatalVelocity      float64 `yaml:"fatal_velocity"`
	MaxAngleStep       float64 `yaml:"max_angle_step"`
	ContactSlack       float64 `yaml:"contact_slack"`
	DieRadius          float64 `yaml:"die_radius"`
	FallAngle          float64 `yaml:"fall_angle"` // multiple of pi
	ExplosionFrames    int     `yaml:"explosion_frames"`
	ExplosionFrameTime float64 `yaml:"explosion_frame_time"`
}

// WorldConfig defines level rules and the playfield.
type WorldConfig struct {
	ZitsPerLevel      int         `yaml:"zits_per_level"`
	PassHome          int         `yaml:"pass_home"`
	BaseSpawnInterval float64     `yaml:"base_spawn_interval"`
	MinSpawnInterval  float64     `yaml:"min_spawn_interval"`
	LevelDecay        float64     `yaml:"level_decay"`
	RateDecay         float64     `yaml:"rate_decay"`
	MaxRate           int         `yaml:"max_rate"`
	SpeedPerLevel     float64     `yaml:"speed_per_level"`
	ZoomFactor        int         `yaml:"zoom_factor"`
	DelayStep         int         `yaml:"delay_step"`
	ColumnsMoveZits   bool        `yaml:"columns_move_zits"`
	Frame             FrameConfig `yaml:"frame"`
	ColumnLeft        int         `yaml:"column_left"`
	ColumnTop         int         `yaml:"column_top"`
}

// FrameConfig is the playfield rectangle; leaving it is fatal.
type FrameConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Metrics converts the terrain section.
func (c Config) Metrics() terrain.Metrics {
	t := c.Terrain
	return terrain.Metrics{
		TileSize:      t.TileSize,
		GirderWidth:   t.GirderWidth,
		MoveStep:      t.MoveStep,
		SlopeFraction: t.SlopeFraction,
		SlopeGrade:    t.SlopeGrade,
		ArcSteps:      t.ArcSteps,
		SpikesSize:    t.SpikesSize,
		SpikesEdge:    t.SpikesEdge,
		HomeSize:      int(math.Round(c.Zit.Size)),
	}
}

// Params converts the zit section.
func (c Config) Params() actor.Params {
	z := c.Zit
	return actor.Params{
		Size:               z.Size,
		AngleIncrement:     z.AngleIncrement,
		FallForce:          z.FallForce,
		FatalVelocity:      z.FatalVelocity,
		MaxAngleStep:       z.MaxAngleStep,
		ContactSlack:       z.ContactSlack,
		DieRadius:          z.DieRadius,
		FallAngle:          z.FallAngle * math.Pi,
		ExplosionFrames:    z.ExplosionFrames,
		ExplosionFrameTime: z.ExplosionFrameTime,
	}
}

// Rules converts the world section.
func (c Config) Rules() world.Rules {
	w := c.World
	return world.Rules{
		ZitsPerLevel:      w.ZitsPerLevel,
		PassHome:          w.PassHome,
		BaseSpawnInterval: w.BaseSpawnInterval,
		MinSpawnInterval:  w.MinSpawnInterval,
		LevelDecay:        w.LevelDecay,
		RateDecay:         w.RateDecay,
		MaxRate:           w.MaxRate,
		SpeedPerLevel:     w.SpeedPerLevel,
		ZoomFactor:        w.ZoomFactor,
		DelayStep:         w.DelayStep,
		ColumnsMoveZits:   w.ColumnsMoveZits,
		Frame:             geom.R(w.Frame.X, w.Frame.Y, w.Frame.Width, w.Frame.Height),
		ColumnLeft:        w.ColumnLeft,
		ColumnTop:         w.ColumnTop,
	}
}

// WorldConfig returns the complete simulation configuration.
func (c Config) WorldConfig(listener actor.Listener) world.Config {
	return world.Config{
		Rules:    c.Rules(),
		Metrics:  c.Metrics(),
		Params:   c.Params(),
		Listener: listener,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplyPreset modifies the config based on a difficulty preset. Unknown
// presets leave it untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.World.BaseSpawnInterval = 4000
		cfg.World.SpeedPerLevel = 0.03
		cfg.World.PassHome = 8
	case DifficultyHard:
		cfg.World.BaseSpawnInterval = 2400
		cfg.World.SpeedPerLevel = 0.08
		cfg.World.PassHome = 14
	}
}
