package invert

// HVector is a dense-backed right-hand-side/solution vector that also
// tracks the sparsity pattern of its nonzero entries, so Ftran/Btran can
// choose a sparse or dense traversal without the caller having to know
// which applies (spec.md §6).
//
// Contract: Dim is fixed at construction. Array always has length Dim and
// is the source of truth for values; Index lists the positions currently
// believed nonzero and is only trustworthy after Pack or when the vector
// was built exclusively through Mark. Count is len(Index) once packed.
type HVector struct {
	Dim   int
	Array []float64
	Index []int
	Count int
}

// NewHVector returns a zeroed HVector of the given dimension.
func NewHVector(dim int) *HVector {
	return &HVector{
		Dim:   dim,
		Array: make([]float64, dim),
		Index: make([]int, 0, dim),
	}
}

// Clear zeroes the dense array and drops the index list, without
// reallocating backing storage.
func (v *HVector) Clear() {
	for i := range v.Array {
		v.Array[i] = 0
	}
	v.Index = v.Index[:0]
	v.Count = 0
}

// Mark records a nonzero entry at position i, appending i to the index
// list the first time it becomes nonzero. Setting an already-tracked
// position just updates the value.
func (v *HVector) Mark(i int, value float64) {
	wasZero := v.Array[i] == 0
	v.Array[i] = value
	if wasZero && value != 0 {
		v.Index = append(v.Index, i)
		v.Count = len(v.Index)
	}
}

// Pack rebuilds the index list from a complete scan of Array, discarding
// any stale entries Mark didn't see (e.g. after direct Array writes). Used
// after a dense solve path populates Array directly.
func (v *HVector) Pack() {
	v.Index = v.Index[:0]
	for i, x := range v.Array {
		if x != 0 {
			v.Index = append(v.Index, i)
		}
	}
	v.Count = len(v.Index)
}

// Dense reports whether a sparse traversal isn't worth it at the given
// expected density threshold, i.e. whether the vector should be processed
// as dense. density is Count/Dim.
func (v *HVector) Dense(expectedDensity float64) bool {
	if v.Dim == 0 {
		return false
	}
	return float64(v.Count)/float64(v.Dim) >= expectedDensity
}

// Saxpy computes v.Array[i] += alpha*x.Array[i] for every index x tracks as
// nonzero, folding newly nonzero positions of v into its own index list.
// x and v must share the same Dim.
func (v *HVector) Saxpy(alpha float64, x *HVector) {
	for _, i := range x.Index {
		wasZero := v.Array[i] == 0
		v.Array[i] += alpha * x.Array[i]
		if wasZero && v.Array[i] != 0 {
			v.Index = append(v.Index, i)
		}
	}
	v.Count = len(v.Index)
}

// CopyFrom overwrites v's dense array with src (len(src) must equal
// v.Dim) and repacks the index list.
func (v *HVector) CopyFrom(src []float64) {
	copy(v.Array, src)
	v.Pack()
}
