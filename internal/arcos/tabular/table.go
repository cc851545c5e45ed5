package tabular

// Table is a column-oriented row store: row i is (Frame[i], Coords[i],
// optionally ObjectID[i] and BinMeas[i]). EventID is populated by Track
// and is nil beforehand.
type Table struct {
	Frame    []int
	Coords   [][]float64
	ObjectID []string
	BinMeas  []float64
	EventID  []int
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Frame)
}

// HasObjectID reports whether ObjectID was populated.
func (t *Table) HasObjectID() bool {
	return len(t.ObjectID) == t.Len() && t.Len() > 0
}

// HasBinMeas reports whether BinMeas was populated.
func (t *Table) HasBinMeas() bool {
	return len(t.BinMeas) == t.Len() && t.Len() > 0
}

// row extracts one observation by index, used internally once sorting and
// filtering have settled on a final row order.
type row struct {
	frame    int
	coords   []float64
	objectID string
	active   bool
}

func (t *Table) rows() []row {
	n := t.Len()
	out := make([]row, n)
	for i := 0; i < n; i++ {
		r := row{frame: t.Frame[i], coords: t.Coords[i], active: true}
		if t.HasObjectID() {
			r.objectID = t.ObjectID[i]
		}
		if t.HasBinMeas() {
			r.active = t.BinMeas[i] > 0
		}
		out[i] = r
	}
	return out
}
