package vector

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"identical unnormalized", []float32{2, 0}, []float32{7, 0}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
		{"empty", nil, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosine_ClampedToRange(t *testing.T) {
	// Accumulated float error must never push the result outside [-1, 1];
	// downstream scoring adds 1.0 and promises [0, 2].
	a := make([]float32, 384)
	for i := range a {
		a[i] = 0.1
	}
	got := Cosine(a, a)
	if got > 1.0 || got < -1.0 {
		t.Errorf("Cosine() = %f, outside [-1, 1]", got)
	}
	if got < 0.999 {
		t.Errorf("Cosine() = %f, want ~1.0", got)
	}
}
