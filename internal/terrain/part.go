// Package terrain models the movable playfield: tiles carrying a set of
// shape parts, the platform segments and hazard rectangles derived from
// those parts, and columns of tiles that shift by one tile at a time.
package terrain

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Part is a bit set of tile shape parts.
type Part uint16

const (
	Flat Part = 1 << iota
	SlantUp
	SlantDown
	TransitionTop
	TransitionBottom
	Block
	SpikesUp
	SpikesDown
	Start
	End

	Empty Part = 0
)

// ErrUnknownPart is returned when a part name cannot be parsed.
var ErrUnknownPart = errors.New("terrain: unknown tile part")

var partNames = []struct {
	part Part
	name string
}{
	{Flat, "Flat"},
	{SlantUp, "SlantUp"},
	{SlantDown, "SlantDown"},
	{TransitionTop, "TransitionTop"},
	{TransitionBottom, "TransitionBottom"},
	{Block, "Block"},
	{SpikesUp, "SpikesUp"},
	{SpikesDown, "SpikesDown"},
	{Start, "Start"},
	{End, "End"},
}

// AllParts returns every single-bit part in declaration order.
func AllParts() []Part {
	out := make([]Part, len(partNames))
	for i, p := range partNames {
		out[i] = p.part
	}
	return out
}

// Has reports whether every bit of part is set in p.
func (p Part) Has(part Part) bool {
	return part != 0 && p&part == part
}

// Toggle flips the given bits.
func (p Part) Toggle(part Part) Part {
	return p ^ part
}

// Count returns the number of parts set.
func (p Part) Count() int {
	return bits.OnesCount16(uint16(p))
}

// List returns the individual parts set in p, in declaration order.
func (p Part) List() []Part {
	var out []Part
	for _, pn := range partNames {
		if p&pn.part != 0 {
			out = append(out, pn.part)
		}
	}
	return out
}

// String renders the set as a comma separated list, e.g. "Flat, Start".
func (p Part) String() string {
	if p == Empty {
		return "Empty"
	}
	names := make([]string, 0, p.Count())
	for _, pn := range partNames {
		if p&pn.part != 0 {
			names = append(names, pn.name)
		}
	}
	return strings.Join(names, ", ")
}

// ParsePart parses a single part name. Matching ignores case.
func ParsePart(s string) (Part, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Empty") || s == "" {
		return Empty, nil
	}
	for _, pn := range partNames {
		if strings.EqualFold(pn.name, s) {
			return pn.part, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownPart, s)
}

// ParseParts parses the comma separated form produced by String.
func ParseParts(s string) (Part, error) {
	var result Part
	for _, field := range strings.Split(s, ",") {
		part, err := ParsePart(field)
		if err != nil {
			return Empty, err
		}
		result |= part
	}
	return result, nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Part) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Part) UnmarshalText(text []byte) error {
	parsed, err := ParseParts(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
