package systems

import "github.com/chewxy/math32"

// placementGrid is a sparse spatial hash used while placing blossoms. With
// the cell size equal to the minimum separation, any point closer than that
// lies in the candidate's cell or one of its 8 neighbours. Only occupied
// cells are stored, so memory follows the number of points rather than the
// spawn area.
type placementGrid struct {
	cellSize float32
	cells    map[[2]int][]int // point indices per occupied cell
	points   [][2]float32     // accepted (x, z) positions
}

// newPlacementGrid creates an empty grid with cells of the given size.
func newPlacementGrid(cellSize float32, capacity int) *placementGrid {
	return &placementGrid{
		cellSize: cellSize,
		cells:    make(map[[2]int][]int, capacity),
		points:   make([][2]float32, 0, capacity),
	}
}

// Insert records an accepted position.
func (g *placementGrid) Insert(x, z float32) {
	idx := len(g.points)
	g.points = append(g.points, [2]float32{x, z})
	key := g.cell(x, z)
	g.cells[key] = append(g.cells[key], idx)
}

// TooClose reports whether any accepted point is strictly closer than minDist
// to (x, z) in the x/z plane.
func (g *placementGrid) TooClose(x, z, minDist float32) bool {
	if minDist <= 0 {
		return false
	}
	minDistSq := minDist * minDist

	key := g.cell(x, z)
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			for _, idx := range g.cells[[2]int{key[0] + dx, key[1] + dz}] {
				p := g.points[idx]
				ox := p[0] - x
				oz := p[1] - z
				if ox*ox+oz*oz < minDistSq {
					return true
				}
			}
		}
	}
	return false
}

// cell returns the grid key for a world position.
func (g *placementGrid) cell(x, z float32) [2]int {
	if g.cellSize <= 0 {
		return [2]int{}
	}
	return [2]int{
		int(math32.Floor(x / g.cellSize)),
		int(math32.Floor(z / g.cellSize)),
	}
}
