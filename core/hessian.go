package core

// HessianSparsityType selects which half of a symmetric Hessian pattern a
// HessianIndexMap retains: entries with row <= col (Upper) or row >= col
// (Lower). It is a single model-wide, construction-time choice (spec open
// question, resolved in SPEC_FULL.md and DESIGN.md) threaded down through
// package autodiff's per-group structure analysis and into the global
// HessianIndexMap shared across the quadratic and nonlinear evaluators.
type HessianSparsityType uint8

const (
	// HessianUpper keeps (row, col) with row <= col.
	HessianUpper HessianSparsityType = iota
	// HessianLower keeps (row, col) with row >= col.
	HessianLower
)

// DefaultHessianSparsityType is the convention used when a model does not
// pick one explicitly.
const DefaultHessianSparsityType = HessianUpper

// HessianIndexMap interns (row, col) pairs into a single deduplicated,
// triangle-canonical slot numbering. It is the "global_hessian_index_map"
// of spec §4.6.7: the quadratic evaluator and the nonlinear group engine
// both intern into the *same* map instance so that two contributions to
// the same symmetric entry land in one slot (invariants I3/I4, property
// P3), following the same "map lookup, insert-if-absent, return index"
// idiom as ExpressionGraph.AddVariable/AddParameter (core/graph.go).
type HessianIndexMap struct {
	triangle HessianSparsityType
	index    map[[2]int]int
	rows     []int
	cols     []int
}

// NewHessianIndexMap returns an empty map enforcing triangle.
func NewHessianIndexMap(triangle HessianSparsityType) *HessianIndexMap {
	return &HessianIndexMap{triangle: triangle, index: make(map[[2]int]int)}
}

// Triangle reports the convention this map enforces.
func (m *HessianIndexMap) Triangle() HessianSparsityType { return m.triangle }

// Intern canonicalizes (row, col) to the map's triangle, then returns the
// existing slot for that pair or allocates and returns a new one.
func (m *HessianIndexMap) Intern(row, col int) int {
	if (m.triangle == HessianUpper && row > col) || (m.triangle == HessianLower && row < col) {
		row, col = col, row
	}
	key := [2]int{row, col}
	if slot, ok := m.index[key]; ok {
		return slot
	}
	slot := len(m.rows)
	m.rows = append(m.rows, row)
	m.cols = append(m.cols, col)
	m.index[key] = slot
	return slot
}

// Rows and Cols return the interned (row, col) COO arrays, in the order
// slots were first allocated.
func (m *HessianIndexMap) Rows() []int { return m.rows }
func (m *HessianIndexMap) Cols() []int { return m.cols }

// NNZ reports the number of distinct slots interned so far.
func (m *HessianIndexMap) NNZ() int { return len(m.rows) }
