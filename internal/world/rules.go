package world

import (
	"math"

	"github.com/vovakirdan/opdozitz/internal/geom"
)

// Rules holds the level-independent game rules.
type Rules struct {
	ZitsPerLevel int
	PassHome     int // zits that must reach home to pass a level

	BaseSpawnInterval float64 // ms between spawns on level 1 at rate 0
	MinSpawnInterval  float64
	LevelDecay        float64 // interval factor per level
	RateDecay         float64 // interval factor per hurry step
	MaxRate           int

	SpeedPerLevel float64 // added to the zits' speed factor per level
	ZoomFactor    int     // ticks per frame while fast-forwarding
	DelayStep     int     // editor start delay increment, ms

	// ColumnsMoveZits lets a moving column carry the zits riding it. When
	// false, a column with a live zit in its band cannot be moved.
	ColumnsMoveZits bool

	Frame      geom.Rect
	ColumnLeft int
	ColumnTop  int
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
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
		Frame:             geom.R(25, 25, 550, 750),
		ColumnLeft:        25,
		ColumnTop:         0,
	}
}

// SpawnInterval returns the time between spawns on the given level at the
// given hurry rate.
func (r Rules) SpawnInterval(level, rate int) float64 {
	interval := math.Pow(r.LevelDecay, float64(level-1)) * r.BaseSpawnInterval * math.Pow(r.RateDecay, float64(rate))
	return math.Max(r.MinSpawnInterval, interval)
}

// SpeedFactor returns the zit speed factor for a level.
func (r Rules) SpeedFactor(level int) float64 {
	return 1 + r.SpeedPerLevel*float64(level)
}
