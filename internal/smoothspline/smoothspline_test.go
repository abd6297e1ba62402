package smoothspline

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return math.Abs(a-b) <= tol
}

// uniformGrid returns n equally spaced points covering [0, span].
func uniformGrid(n int, span float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = span * float64(i) / float64(n-1)
	}
	return out
}

func sampled(x []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = f(xi)
	}
	return out
}

func TestFitExactCubic(t *testing.T) {
	x := uniformGrid(25, 1)
	y := sampled(x, func(v float64) float64 { return v * v * v })

	sp, err := Fit(x, y, 3, 1e-6)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	// A cubic polynomial is reproduced by the minimal knot set.
	if got := sp.NumKnots(); got != 8 {
		t.Errorf("NumKnots: got %d, want 8", got)
	}
	if sp.Residual() > 1e-20 {
		t.Errorf("Residual: got %g, want ~0", sp.Residual())
	}
	if got := sp.Evaluate(0.5); !almostEqual(got, 0.125, tolerance) {
		t.Errorf("Evaluate(0.5): got %g, want 0.125", got)
	}
	if got := sp.Integral(0, 1); !almostEqual(got, 0.25, tolerance) {
		t.Errorf("Integral(0,1): got %g, want 0.25", got)
	}
}

func TestFitExactLine(t *testing.T) {
	x := uniformGrid(10, 4)
	y := sampled(x, func(v float64) float64 { return 2*v + 1 })

	sp, err := Fit(x, y, 1, 1e-9)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if got := sp.Evaluate(1.25); !almostEqual(got, 3.5, tolerance) {
		t.Errorf("Evaluate(1.25): got %g, want 3.5", got)
	}
	// integral of 2x+1 over [0,4] is 20
	if got := sp.Integral(0, 4); !almostEqual(got, 20, 1e-8) {
		t.Errorf("Integral(0,4): got %g, want 20", got)
	}
}

func TestFitNoisySineHitsResidualTarget(t *testing.T) {
	const s = 0.05
	x := uniformGrid(60, 4)
	y := sampled(x, func(v float64) float64 {
		return math.Sin(v) + 0.05*math.Sin(37*v)
	})

	sp, err := Fit(x, y, 3, s)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if math.Abs(sp.Residual()-s) >= 1e-3*s {
		t.Errorf("Residual: got %g, want %g within %g", sp.Residual(), s, 1e-3*s)
	}
	// The smoothed curve should track the underlying sine, not the noise.
	if got := sp.Evaluate(2); math.Abs(got-math.Sin(2)) > 0.02 {
		t.Errorf("Evaluate(2): got %g, want %g within 0.02", got, math.Sin(2))
	}
	if got := sp.Integral(0, math.Pi); math.Abs(got-2) > 0.02 {
		t.Errorf("Integral(0,pi): got %g, want 2 within 0.02", got)
	}
}

func TestFitValidation(t *testing.T) {
	x := uniformGrid(10, 1)
	y := sampled(x, math.Sin)
	unsorted := append([]float64(nil), x...)
	unsorted[3], unsorted[4] = unsorted[4], unsorted[3]

	cases := []struct {
		name      string
		x, y      []float64
		degree    int
		smoothing float64
		want      error
	}{
		{"length mismatch", x, y[:9], 3, 0.1, ErrLength},
		{"too few points", x[:3], y[:3], 3, 0.1, ErrTooFew},
		{"unsorted", unsorted, y, 3, 0.1, ErrUnsorted},
		{"degree zero", x, y, 0, 0.1, ErrDegree},
		{"degree six", x, y, 6, 0.1, ErrDegree},
		{"zero smoothing", x, y, 3, 0, ErrSmoothing},
		{"negative smoothing", x, y, 3, -1, ErrSmoothing},
		{"nan smoothing", x, y, 3, math.NaN(), ErrSmoothing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Fit(tc.x, tc.y, tc.degree, tc.smoothing); !errors.Is(err, tc.want) {
				t.Errorf("Fit: got error %v, want %v", err, tc.want)
			}
		})
	}
}

func TestIntegralOrientation(t *testing.T) {
	x := uniformGrid(25, 1)
	y := sampled(x, func(v float64) float64 { return v * v * v })
	sp, err := Fit(x, y, 3, 1e-6)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	fwd := sp.Integral(0.3, 0.8)
	rev := sp.Integral(0.8, 0.3)
	if rev != -fwd {
		t.Errorf("swapped limits: got %g, want %g", rev, -fwd)
	}
	if got := sp.Integral(0.5, 0.5); got != 0 {
		t.Errorf("empty range: got %g, want 0", got)
	}
}

func TestIntegralClipsToSupport(t *testing.T) {
	x := uniformGrid(25, 1)
	y := sampled(x, func(v float64) float64 { return v * v * v })
	sp, err := Fit(x, y, 3, 1e-6)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if got, want := sp.Integral(-3, 2), sp.Integral(0, 1); got != want {
		t.Errorf("clipped: got %g, want %g", got, want)
	}
	if got := sp.Integral(1.5, 2); got != 0 {
		t.Errorf("beyond upper support: got %g, want 0", got)
	}
	if got := sp.Integral(-5, -4); got != 0 {
		t.Errorf("beyond lower support: got %g, want 0", got)
	}
}

func TestEvaluateExtendsBoundaryPiece(t *testing.T) {
	x := uniformGrid(25, 1)
	y := sampled(x, func(v float64) float64 { return v * v * v })
	sp, err := Fit(x, y, 3, 1e-6)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	// The boundary cubic piece is the polynomial itself, so extrapolation
	// continues it exactly.
	if got := sp.Evaluate(1.2); !almostEqual(got, 1.728, 1e-8) {
		t.Errorf("Evaluate(1.2): got %g, want 1.728", got)
	}
}
