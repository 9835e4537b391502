package world

import "math"

// cellKey addresses one grid cell.
type cellKey struct{ x, y int32 }

// Grid buckets placed objects into square cells so range queries only look
// at the cells a search circle overlaps.
type Grid struct {
	cellSize float32
	cells    map[cellKey]map[ObjectID]Object
}

// NewGrid creates an empty grid with the given cell edge length.
func NewGrid(cellSize float32) *Grid {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &Grid{cellSize: cellSize, cells: make(map[cellKey]map[ObjectID]Object)}
}

// CoordToCell converts a map coordinate to its cell index.
func (g *Grid) CoordToCell(x, y float32) (cx, cy int32) {
	return int32(math.Floor(float64(x / g.cellSize))), int32(math.Floor(float64(y / g.cellSize)))
}

func (g *Grid) keyOf(p Position) cellKey {
	x, y := g.CoordToCell(p.X, p.Y)
	return cellKey{x, y}
}

// Add puts obj into the cell of its current position.
func (g *Grid) Add(obj Object) {
	k := g.keyOf(obj.Position())
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ObjectID]Object)
		g.cells[k] = cell
	}
	cell[obj.ID()] = obj
}

// Remove deletes obj from the cell of position p.
func (g *Grid) Remove(id ObjectID, p Position) {
	k := g.keyOf(p)
	cell := g.cells[k]
	delete(cell, id)
	if len(cell) == 0 {
		delete(g.cells, k)
	}
}

// Move rebuckets obj after it moved from old.
func (g *Grid) Move(obj Object, old Position) {
	if g.keyOf(old) == g.keyOf(obj.Position()) {
		return
	}
	g.Remove(obj.ID(), old)
	g.Add(obj)
}

// VisitRange calls fn for every object whose 2D distance to center is at
// most radius. Iteration stops when fn returns false.
func (g *Grid) VisitRange(center Position, radius float32, fn func(Object) bool) {
	minX, minY := g.CoordToCell(center.X-radius, center.Y-radius)
	maxX, maxY := g.CoordToCell(center.X+radius, center.Y+radius)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for _, obj := range g.cells[cellKey{cx, cy}] {
				if center.Dist2D(obj.Position()) > radius {
					continue
				}
				if !fn(obj) {
					return
				}
			}
		}
	}
}

// CellCount returns the number of non-empty cells.
func (g *Grid) CellCount() int { return len(g.cells) }
