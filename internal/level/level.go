// Package level describes level layouts and loads them from YAML files or
// from the built-in set. It knows nothing about the simulation beyond the
// tile part vocabulary.
package level

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/opdozitz/internal/terrain"
)

const (
	MinNumber = 1
	MaxNumber = 25

	// SpawnColumn and SpawnRow locate the tile zits enter on.
	SpawnColumn = 0
	SpawnRow    = 1
)

var (
	// ErrNotFound is returned when no level has the requested number.
	ErrNotFound = errors.New("level: not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("level: invalid layout")
)

// Column is one vertical stack of tiles, listed top to bottom.
type Column struct {
	Locked bool           `yaml:"locked,omitempty"`
	Tiles  []terrain.Part `yaml:"tiles,flow"`
}

// Level is a complete layout.
type Level struct {
	Number     int      `yaml:"number"`
	Name       string   `yaml:"name,omitempty"`
	StartDelay int      `yaml:"start_delay,omitempty"` // ms before the first spawn
	Rows       int      `yaml:"rows,omitempty"`
	Columns    []Column `yaml:"columns"`

	// Path is the file the level was read from, empty for built-ins.
	Path string `yaml:"-"`
}

// Parse decodes a YAML level, pads every column to Rows with empty tiles
// and validates the result.
func Parse(data []byte) (Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Level{}, fmt.Errorf("level: yaml unmarshal: %w", err)
	}
	if err := l.Normalize(); err != nil {
		return Level{}, err
	}
	return l, nil
}

// Encode renders the level as YAML.
func (l Level) Encode() ([]byte, error) {
	out, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("level: yaml marshal: %w", err)
	}
	return out, nil
}

// Normalize pads short columns with empty tiles and validates the layout.
func (l *Level) Normalize() error {
	if l.Rows == 0 {
		for _, c := range l.Columns {
			l.Rows = max(l.Rows, len(c.Tiles))
		}
	}
	for i := range l.Columns {
		if n := len(l.Columns[i].Tiles); n > l.Rows {
			return fmt.Errorf("%w: column %d has %d tiles, rows is %d", ErrInvalid, i, n, l.Rows)
		}
		for len(l.Columns[i].Tiles) < l.Rows {
			l.Columns[i].Tiles = append(l.Columns[i].Tiles, terrain.Empty)
		}
	}
	return l.Validate()
}

// Validate checks that the layout can be played.
func (l Level) Validate() error {
	if l.Number < MinNumber || l.Number > MaxNumber {
		return fmt.Errorf("%w: number %d outside %d..%d", ErrInvalid, l.Number, MinNumber, MaxNumber)
	}
	if len(l.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalid)
	}
	if l.Rows <= SpawnRow {
		return fmt.Errorf("%w: %d rows leave no spawn tile", ErrInvalid, l.Rows)
	}
	if l.StartDelay < 0 {
		return fmt.Errorf("%w: negative start delay", ErrInvalid)
	}
	for i, c := range l.Columns {
		if len(c.Tiles) != l.Rows {
			return fmt.Errorf("%w: column %d has %d tiles, expected %d", ErrInvalid, i, len(c.Tiles), l.Rows)
		}
	}
	spawn := terrain.NewTile(l.Columns[SpawnColumn].Tiles[SpawnRow], 0, 0, nil)
	if len(spawn.Platforms()) == 0 {
		return fmt.Errorf("%w: spawn tile %v has no platform", ErrInvalid, spawn.Parts)
	}
	return nil
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	cp := l
	cp.Columns = make([]Column, len(l.Columns))
	for i, c := range l.Columns {
		cp.Columns[i] = Column{Locked: c.Locked, Tiles: append([]terrain.Part(nil), c.Tiles...)}
	}
	return cp
}

// HomeCount returns the number of End tiles in the layout.
func (l Level) HomeCount() int {
	n := 0
	for _, c := range l.Columns {
		for _, p := range c.Tiles {
			if p.Has(terrain.End) {
				n++
			}
		}
	}
	return n
}

// FileName returns the canonical file name for a level number.
func FileName(number int) string {
	return fmt.Sprintf("level%02d.yaml", number)
}
