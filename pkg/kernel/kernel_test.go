package kernel

import (
	"math/big"
	"testing"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshAddTriangleAndAppend(t *testing.T) {
	m := &Mesh{}
	m.AddTriangle([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	if m.TriangleCount() != 1 || m.VertexCount() != 3 {
		t.Fatalf("after AddTriangle: %d triangles, %d vertices", m.TriangleCount(), m.VertexCount())
	}
	o := &Mesh{}
	o.AddTriangle([3]float64{0, 0, 1}, [3]float64{1, 0, 1}, [3]float64{0, 1, 1}, [3]float64{0, 0, 1})
	m.Append(o)
	if m.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", m.TriangleCount())
	}
	if got := m.Triangle(1)[0]; got != [3]float64{0, 0, 1} {
		t.Errorf("Triangle(1)[0] = %v, want [0 0 1]", got)
	}
	if m.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty mesh")
	}
}

// --- Number fields ---

func TestExactArithmetic(t *testing.T) {
	third := NewExact(big.NewRat(1, 3))
	sum := third.Add(third).Add(third)
	if sum.Cmp(FromInt[Exact](1)) != 0 {
		t.Errorf("1/3+1/3+1/3 = %s, want 1", sum)
	}
	var zero Exact
	if zero.Sign() != 0 {
		t.Error("zero value Exact is not 0")
	}
	if FromFloat[Exact](0.1).Cmp(NewExact(big.NewRat(1, 10))) == 0 {
		t.Error("0.1 as a double must not equal the rational 1/10")
	}
	if KindOf[Exact]() != KindExact || KindOf[Inexact]() != KindInexact {
		t.Error("KindOf reports the wrong kernel flavour")
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0}, {0.5, 0.5}, {2, 1},
	}
	for _, tt := range tests {
		got := Clamp01(FromFloat[Exact](tt.in)).Float64()
		if got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
