package hopper

import (
	"math"
	"sort"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// maxCellsPerEntry caps how many cells a single box or query may cover.
// Larger boxes are kept out of the grid and always tested.
const maxCellsPerEntry = 512

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordonnées d'une cellule dans l'espace 3D
type CellKey struct {
	X, Y, Z int
}

// Cell - Conteneur d'indices de colliders dans une cellule
type Cell struct {
	indices []int
}

// SpatialGrid - Grille spatiale uniforme avec hashing pour broad phase
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructeur
// ============================================================================

// NewSpatialGrid - Crée une nouvelle grille spatiale
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].indices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - Arrondit à la puissance de 2 supérieure
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds index to every cell aabb covers. It returns false, and inserts
// nothing, when aabb covers more than maxCellsPerEntry cells.
func (sg *SpatialGrid) Insert(index int, aabb actor.AABB) bool {
	minCell, maxCell, ok := sg.cellRange(aabb)
	if !ok {
		return false
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})

				sg.cells[cellIdx].indices = append(sg.cells[cellIdx].indices, index)
			}
		}
	}

	return true
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].indices = sg.cells[i].indices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].indices) > 1 {
			sort.Ints(sg.cells[i].indices)
		}
	}
}

// Query returns the sorted, unique indices stored in the cells aabb covers.
// Hashing can bring in indices from unrelated cells: callers still test
// bounds. ok is false when aabb is too large to be queried cell by cell.
func (sg *SpatialGrid) Query(aabb actor.AABB) (indices []int, ok bool) {
	minCell, maxCell, ok := sg.cellRange(aabb)
	if !ok {
		return nil, false
	}

	seen := make(map[int]struct{})
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				for _, idx := range sg.cells[sg.hashCell(CellKey{x, y, z})].indices {
					if _, dup := seen[idx]; dup {
						continue
					}
					seen[idx] = struct{}{}
					indices = append(indices, idx)
				}
			}
		}
	}
	sort.Ints(indices)

	return indices, true
}

// cellRange returns the cells covered by aabb, or false if there are too many
func (sg *SpatialGrid) cellRange(aabb actor.AABB) (CellKey, CellKey, bool) {
	for i := 0; i < 3; i++ {
		if math.IsNaN(aabb.Min[i]) || math.IsNaN(aabb.Max[i]) || math.IsInf(aabb.Min[i], 0) || math.IsInf(aabb.Max[i], 0) {
			return CellKey{}, CellKey{}, false
		}
	}

	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	count := 1
	for _, span := range []int{maxCell.X - minCell.X + 1, maxCell.Y - minCell.Y + 1, maxCell.Z - minCell.Z + 1} {
		if span <= 0 || span > maxCellsPerEntry {
			return CellKey{}, CellKey{}, false
		}
		count *= span
		if count > maxCellsPerEntry {
			return CellKey{}, CellKey{}, false
		}
	}

	return minCell, maxCell, true
}

// worldToCell - Convertit une position monde en coordonnées de cellule
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - Hash une cellule vers un index dans l'array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
