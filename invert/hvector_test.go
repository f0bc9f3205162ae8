package invert

import "testing"

func TestHVector_MarkAndPack(t *testing.T) {
	v := NewHVector(4)
	v.Mark(1, 5.0)
	v.Mark(3, -2.0)
	if v.Count != 2 {
		t.Fatalf("Count = %d, want 2", v.Count)
	}
	v.Array[2] = 7.0 // bypass Mark
	v.Pack()
	if v.Count != 3 {
		t.Fatalf("Count after Pack = %d, want 3", v.Count)
	}
}

func TestHVector_Clear(t *testing.T) {
	v := NewHVector(3)
	v.Mark(0, 1.0)
	v.Clear()
	if v.Count != 0 {
		t.Fatalf("Count after Clear = %d, want 0", v.Count)
	}
	for _, x := range v.Array {
		if x != 0 {
			t.Fatalf("Array not zeroed after Clear: %v", v.Array)
		}
	}
}

func TestHVector_Saxpy(t *testing.T) {
	v := NewHVector(3)
	v.CopyFrom([]float64{1, 0, 1})
	x := NewHVector(3)
	x.CopyFrom([]float64{2, 3, 0})

	v.Saxpy(2, x)
	want := []float64{5, 6, 1}
	for i := range want {
		if v.Array[i] != want[i] {
			t.Fatalf("Array[%d] = %v, want %v", i, v.Array[i], want[i])
		}
	}
}

func TestHVector_Dense(t *testing.T) {
	v := NewHVector(10)
	v.Mark(0, 1)
	if v.Dense(0.5) {
		t.Fatal("Dense(0.5) should be false at 10% fill")
	}
	for i := 1; i < 8; i++ {
		v.Mark(i, 1)
	}
	if !v.Dense(0.5) {
		t.Fatal("Dense(0.5) should be true at 80% fill")
	}
}
