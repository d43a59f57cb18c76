package numeric

import (
	"errors"
	"math"
	"testing"
)

func TestArray_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		arr   Array
		valid bool
	}{
		{"empty", Array{}, true},
		{"normal", Array{1.0, 2.0, 3.0}, true},
		{"zeros", Array{0.0, 0.0}, true},
		{"with NaN", Array{1.0, math.NaN()}, false},
		{"with +Inf", Array{1.0, math.Inf(1)}, false},
		{"with -Inf", Array{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arr.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestArray_Sum(t *testing.T) {
	tests := []struct {
		arr  Array
		want float64
	}{
		{Array{}, 0},
		{Array{1, 2, 3}, 6},
		{Array{12.011, 1.008, 1.008}, 14.027},
	}

	for _, tt := range tests {
		if got := tt.arr.Sum(); math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("Sum(%v) = %v, want %v", tt.arr, got, tt.want)
		}
	}
}

func TestVec3_Norm(t *testing.T) {
	if got := (Vec3{3, 4, 0}).Norm(); got != 5 {
		t.Errorf("Norm() = %v, want 5", got)
	}
	if got := (Vec3{}).Norm(); got != 0 {
		t.Errorf("Norm() = %v, want 0", got)
	}
}

func TestMatrixFlatIsValid(t *testing.T) {
	m := Stack([]Vec3{{1, 2, 3}, {4, 5, 6}})
	if !m.Flat().IsValid() {
		t.Error("finite matrix reported invalid")
	}
	if err := m.SetRow(1, Vec3{0, math.NaN(), 0}); err != nil {
		t.Fatal(err)
	}
	if m.Flat().IsValid() {
		t.Error("NaN entry not detected")
	}
}

func TestArray_CloneIndependent(t *testing.T) {
	src := Array{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestBroadcast(t *testing.T) {
	m := Broadcast(Array{12, 1, 16}, 3)
	if m.Rows() != 3 || m.Cols() != 3 {
		t.Fatalf("shape = %dx%d, want 3x3", m.Rows(), m.Cols())
	}
	want := []float64{12, 1, 16}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m.At(i, j) != want[i] {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, m.At(i, j), want[i])
			}
		}
	}
}

func TestStackPreservesOrder(t *testing.T) {
	vs := []Vec3{{1, 2, 3}, {4, 5, 6}}
	m := Stack(vs)
	for i, v := range vs {
		row, err := m.Row(i)
		if err != nil {
			t.Fatalf("Row(%d): %v", i, err)
		}
		if row != v {
			t.Errorf("Row(%d) = %v, want %v", i, row, v)
		}
	}
	if got := m.Flat(); len(got) != 6 || got[3] != 4 {
		t.Errorf("Flat() = %v", got)
	}
}

func TestMatrixRowBounds(t *testing.T) {
	m := Stack([]Vec3{{1, 1, 1}})
	if _, err := m.Row(1); !errors.Is(err, ErrShape) {
		t.Errorf("Row(1) error = %v, want ErrShape", err)
	}
	if err := m.SetRow(-1, Vec3{}); !errors.Is(err, ErrShape) {
		t.Errorf("SetRow(-1) error = %v, want ErrShape", err)
	}
	if err := Broadcast(Array{1}, 2).SetRow(0, Vec3{}); !errors.Is(err, ErrShape) {
		t.Errorf("SetRow on 2-col matrix error = %v, want ErrShape", err)
	}
}

func TestMatrixCloneIndependent(t *testing.T) {
	m := Stack([]Vec3{{1, 2, 3}})
	c := m.Clone()
	if err := c.SetRow(0, Vec3{9, 9, 9}); err != nil {
		t.Fatal(err)
	}
	if row, _ := m.Row(0); row != (Vec3{1, 2, 3}) {
		t.Errorf("original mutated: %v", row)
	}
}
