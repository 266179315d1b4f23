package terrain

// Column is a vertical stack of tiles sharing a left edge. Index 0 is the
// top tile. A column shifts by exactly one tile at a time; while shifting
// it holds one extra tile cloned from the far end.
type Column struct {
	left     int
	tiles    []Tile
	locked   bool
	movingUp bool
	steps    int
	metrics  *Metrics
}

// NewColumn creates an empty column at left. A nil m selects DefaultMetrics.
func NewColumn(left int, locked bool, m *Metrics) *Column {
	if m == nil {
		m = &defaultMetrics
	}
	return &Column{left: left, locked: locked, metrics: m}
}

// Add appends a tile with the given parts below the current last tile.
func (c *Column) Add(parts Part, top int) {
	c.tiles = append(c.tiles, NewTile(parts, c.left, top, c.metrics))
}

func (c *Column) Left() int  { return c.left }
func (c *Column) Right() int { return c.left + c.metrics.TileSize }
func (c *Column) Len() int   { return len(c.tiles) }

// Locked reports whether the player may not move the column.
func (c *Column) Locked() bool { return c.locked }

// Moving reports whether a shift is in progress.
func (c *Column) Moving() bool { return c.steps > 0 }

// MovingUp reports the direction of the current or last shift.
func (c *Column) MovingUp() bool { return c.movingUp }

// Remaining returns the distance left in the current shift.
func (c *Column) Remaining() int { return c.steps }

// Metrics returns the dimensions the column's tiles are measured with.
func (c *Column) Metrics() *Metrics { return c.metrics }

// At returns the tile at index i.
func (c *Column) At(i int) Tile { return c.tiles[i] }

// Tile returns a pointer to the tile at index i for in-place edits.
func (c *Column) Tile(i int) *Tile { return &c.tiles[i] }

// Tiles returns the column's tiles. The slice must not be retained across
// updates.
func (c *Column) Tiles() []Tile { return c.tiles }

// InColumn reports whether x lies within the column's horizontal band,
// both edges included.
func (c *Column) InColumn(x float64) bool {
	return float64(c.left) <= x && x <= float64(c.Right())
}

// OverlapsBand reports whether [left, right] intersects the column band.
func (c *Column) OverlapsBand(left, right float64) bool {
	return left <= float64(c.Right()) && float64(c.left) <= right
}

// MoveUp starts shifting the column up by one tile: the top tile wraps
// around to the bottom.
func (c *Column) MoveUp() {
	if len(c.tiles) == 0 {
		return
	}
	c.movingUp = true
	first, last := c.tiles[0], c.tiles[len(c.tiles)-1]
	c.tiles = append(c.tiles, first.Clone(last.Top+c.metrics.TileSize))
	c.steps = c.metrics.TileSize
}

// MoveDown starts shifting the column down by one tile: the bottom tile
// wraps around to the top.
func (c *Column) MoveDown() {
	if len(c.tiles) == 0 {
		return
	}
	c.movingUp = false
	first, last := c.tiles[0], c.tiles[len(c.tiles)-1]
	c.tiles = append([]Tile{last.Clone(first.Top - c.metrics.TileSize)}, c.tiles...)
	c.steps = c.metrics.TileSize
}

// Update advances a shift in progress by one step and returns the signed
// vertical delta applied to every tile, or 0 when idle. The elapsed time is
// ignored: columns move a fixed distance per tick.
func (c *Column) Update(elapsed float64) int {
	if c.steps <= 0 {
		return 0
	}
	delta := c.metrics.MoveStep
	if c.movingUp {
		delta = -delta
	}
	for i := range c.tiles {
		c.tiles[i].Top += delta
	}
	c.steps -= c.metrics.MoveStep
	if !c.Moving() {
		if c.movingUp {
			c.tiles = c.tiles[1:]
		} else {
			c.tiles = c.tiles[:len(c.tiles)-1]
		}
	}
	return delta
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	cp := *c
	cp.tiles = append([]Tile(nil), c.tiles...)
	return &cp
}
