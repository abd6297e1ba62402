package smoothspline

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// tol is the relative tolerance on the residual target: the fit is
	// accepted once |f(p)-s| < tol*s.
	tol   = 1e-3
	maxit = 20
)

var (
	ErrLength     = errors.New("smoothspline: x and y must have the same length")
	ErrTooFew     = errors.New("smoothspline: need more data points than the spline degree")
	ErrUnsorted   = errors.New("smoothspline: abscissae must be strictly increasing")
	ErrDegree     = errors.New("smoothspline: degree must be between 1 and 5")
	ErrSmoothing  = errors.New("smoothspline: smoothing factor must be positive")
	ErrNoConverge = errors.New("smoothspline: smoothing iteration did not converge")
	ErrStorage    = errors.New("smoothspline: knot storage exhausted before reaching the smoothing target")
)

// Spline is a fitted smoothing spline in B-spline form. It is immutable
// after Fit returns and safe for concurrent use.
type Spline struct {
	t        []float64 // knot vector, boundary knots repeated degree+1 times
	c        []float64 // B-spline coefficients, len(t)-degree-1 of them
	k        int       // degree
	residual float64   // sum of squared residuals of the accepted fit
}

// Fit computes a smoothing spline of the given degree through (x[i], y[i]).
// The abscissae must be strictly increasing. The smoothing factor controls
// the trade-off between closeness of fit and smoothness: the returned
// spline satisfies sum((y[i]-s(x[i]))^2) <= smoothing (up to a small
// relative tolerance), using as few knots as that target allows.
func Fit(x, y []float64, degree int, smoothing float64) (*Spline, error) {
	if len(x) != len(y) {
		return nil, ErrLength
	}
	if degree < 1 || degree > 5 {
		return nil, ErrDegree
	}
	if len(x) <= degree {
		return nil, ErrTooFew
	}
	if !(smoothing > 0) {
		return nil, ErrSmoothing
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, ErrUnsorted
		}
	}
	return fit(x, y, degree, smoothing)
}

// Residual returns the sum of squared residuals of the accepted fit.
func (sp *Spline) Residual() float64 { return sp.residual }

// NumKnots returns the length of the knot vector, boundary repeats included.
func (sp *Spline) NumKnots() int { return len(sp.t) }

// Evaluate returns the spline value at xx. Outside the data range the
// boundary polynomial piece is extended.
func (sp *Spline) Evaluate(xx float64) float64 {
	k := sp.k
	nc := len(sp.c)
	lz := k
	for xx >= sp.t[lz+1] && lz != nc-1 {
		lz++
	}
	var h [6]float64
	bsplineValues(sp.t, k, xx, lz, &h)
	return floats.Dot(h[:k+1], sp.c[lz-k:lz+1])
}

// Integral returns the definite integral of the spline from a to b. The
// integration range is clipped to the spline support, so the parts of
// [a, b] beyond the outermost knots contribute nothing. Orientation is
// preserved: swapping the limits negates the result. The quadrature is
// exact for splines of degree three or less.
func (sp *Spline) Integral(a, b float64) float64 {
	if a == b {
		return 0
	}
	sign := 1.0
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
		sign = -1
	}
	k := sp.k
	n := len(sp.t)
	if lo < sp.t[k] {
		lo = sp.t[k]
	}
	if hi > sp.t[n-k-1] {
		hi = sp.t[n-k-1]
	}
	if lo >= hi {
		return 0
	}
	// Two-point Gauss-Legendre per knot span, exact for cubic pieces.
	const gauss = 0.5773502691896257 // 1/sqrt(3)
	total := 0.0
	for j := k; j < n-k-1; j++ {
		x0, x1 := sp.t[j], sp.t[j+1]
		if x0 < lo {
			x0 = lo
		}
		if x1 > hi {
			x1 = hi
		}
		if x1 <= x0 {
			continue
		}
		xm := 0.5 * (x0 + x1)
		xr := 0.5 * (x1 - x0)
		total += xr * (sp.Evaluate(xm-xr*gauss) + sp.Evaluate(xm+xr*gauss))
	}
	return sign * total
}

// bsplineValues stores in h[0..k] the values at x of the k+1 B-splines that
// are nonzero on the knot interval t[lz] <= x < t[lz+1] (de Boor's stable
// recurrence).
func bsplineValues(t []float64, k int, x float64, lz int, h *[6]float64) {
	var hh [5]float64
	h[0] = 1
	for j := 1; j <= k; j++ {
		copy(hh[:j], h[:j])
		h[0] = 0
		for i := 0; i < j; i++ {
			li := lz + i + 1
			lj := li - j
			f := hh[i] / (t[li] - t[lj])
			h[i] += f * (t[li] - x)
			h[i+1] = f * (x - t[lj])
		}
	}
}

// givens computes a Givens rotation eliminating piv against the diagonal
// element ww, returning cos, sin and the updated diagonal.
func givens(piv, ww float64) (float64, float64, float64) {
	store := math.Abs(piv)
	var dd float64
	if store >= ww {
		dd = store * math.Sqrt(1+(ww/piv)*(ww/piv))
	} else {
		dd = ww * math.Sqrt(1+(piv/ww)*(piv/ww))
	}
	return ww / dd, piv / dd, dd
}

// rotate applies a Givens rotation to the pair (a, b).
func rotate(cos, sin, a, b float64) (float64, float64) {
	return cos*a - sin*b, cos*b + sin*a
}

// backSolve solves the banded upper-triangular system a*c = z, where
// a[i][0] holds the diagonal and a[i][j] the element in column i+j.
func backSolve(a [][]float64, z []float64, nc, band int) []float64 {
	c := make([]float64, nc)
	c[nc-1] = z[nc-1] / a[nc-1][0]
	for i := nc - 2; i >= 0; i-- {
		store := z[i]
		i1 := band - 1
		if nc-1-i < i1 {
			i1 = nc - 1 - i
		}
		for l := 1; l <= i1; l++ {
			store -= c[i+l] * a[i][l]
		}
		c[i] = store / a[i][0]
	}
	return c
}

// penaltyRows builds one row per interior knot holding the discontinuity
// jump of the k-th derivative of the B-splines at that knot, expressed in
// the B-spline coefficients c[row..row+k+1].
func penaltyRows(t []float64, n, k2 int) [][]float64 {
	k1 := k2 - 1
	k := k1 - 1
	nk1 := n - k1
	nrint := nk1 - k
	fac := float64(nrint) / (t[nk1] - t[k1-1])
	rows := make([][]float64, 0, nk1-k2+1)
	var h [12]float64
	for l1 := k2; l1 <= nk1; l1++ {
		lmk := l1 - k1
		for j := 1; j <= k1; j++ {
			ik := j + k1
			lj := l1 + j
			lk := lj - k2
			h[j-1] = t[l1-1] - t[lk-1]
			h[ik-1] = t[l1-1] - t[lj-1]
		}
		row := make([]float64, k2)
		lp := lmk
		for j := 1; j <= k2; j++ {
			jk := j
			prod := h[j-1]
			for i := 0; i < k; i++ {
				jk++
				prod = prod * h[jk-1] * fac
			}
			lk := lp + k1
			row[j-1] = (t[lk-1] - t[lp-1]) / prod
			lp++
		}
		rows = append(rows, row)
	}
	return rows
}

// interpolateRoot estimates the root of f(p) from three bracketing samples
// via the rational form r(p) = (u*p+v)/(p+w), shrinking the bracket so that
// f1 > 0 and f3 < 0 afterwards. p3 < 0 encodes an infinite right bracket.
func interpolateRoot(p1, f1, p2, f2, p3, f3 float64) (p, rp1, rf1, rp3, rf3 float64) {
	if p3 > 0 {
		h1 := f1 * (f2 - f3)
		h2 := f2 * (f3 - f1)
		h3 := f3 * (f1 - f2)
		p = -(p1*p2*h3 + p2*p3*h1 + p3*p1*h2) / (p1*h1 + p2*h2 + p3*h3)
	} else {
		p = (p1*(f1-f3)*f2 - p2*(f2-f3)*f1) / ((f1 - f2) * f3)
	}
	if f2 < 0 {
		return p, p1, f1, p2, f2
	}
	return p, p2, f2, p3, f3
}

// insertKnot places one additional knot at the median data point of the
// knot interval with the largest residual mass and splits that interval's
// bookkeeping proportionally.
func insertKnot(x, t []float64, n int, fpint []float64, nrdata []int, nrint, k int) (int, int) {
	fpmax := 0.0
	number := 0
	maxpt := 0
	maxbeg := 0
	jbegin := 0
	for j := 0; j < nrint; j++ {
		jpoint := nrdata[j]
		if fpint[j] > fpmax && jpoint != 0 {
			fpmax = fpint[j]
			number = j
			maxpt = jpoint
			maxbeg = jbegin
		}
		jbegin += jpoint + 1
	}
	// interior data points of the split interval are x[maxbeg+1..maxbeg+maxpt]
	ihalf := maxbeg + (maxpt+2)/2
	next := number + 1
	for j := nrint - 1; j > number; j-- {
		fpint[j+1] = fpint[j]
		nrdata[j+1] = nrdata[j]
	}
	for p := nrint + k - 1; p > number+k; p-- {
		t[p+1] = t[p]
	}
	nrdata[number] = ihalf - maxbeg - 1
	nrdata[next] = maxpt - (ihalf - maxbeg)
	am := float64(maxpt)
	an := float64(ihalf - maxbeg)
	fpint[number] = fpmax * an / am
	fpint[next] = fpmax * (am - an) / am
	t[next+k] = x[ihalf]
	return n + 1, nrint + 1
}

// fit runs the two-stage smoothing fit: least-squares splines over a
// growing knot set until the residual target is reachable, then iteration
// on the smoothing parameter p until f(p) = s.
func fit(x, y []float64, k int, s float64) (*Spline, error) {
	m := len(x)
	k1 := k + 1
	k2 := k + 2
	nmin := 2 * k1
	acc := tol * s
	nmax := m + k1
	nest := nmax
	xb, xe := x[0], x[m-1]

	t := make([]float64, nest)
	fpint := make([]float64, nest)
	nrdata := make([]int, nest)
	n := nmin
	fpold := 0.0
	fp0 := 0.0
	fp := 0.0
	fpms := 0.0
	nplus := 0
	nrdata[0] = m - 2
	ier := 0

	var a [][]float64
	var z, c []float64
	q := make([][]float64, m)
	for i := range q {
		q[i] = make([]float64, k1)
	}
	var h [6]float64

	done := func() *Spline {
		return &Spline{t: t[:n:n], c: c, k: k, residual: fp}
	}

	// Stage 1: grow the knot set until the least-squares spline comes in
	// under the smoothing target.
	for iter := 0; iter < m; iter++ {
		if n == nmin {
			ier = -2
		}
		nrint := n - nmin + 1
		nc := n - k1
		for j := 0; j < k1; j++ {
			t[j] = xb
			t[n-1-j] = xe
		}
		a = make([][]float64, nc)
		for i := range a {
			a[i] = make([]float64, k1)
		}
		z = make([]float64, nc)
		fp = 0
		lz := k
		for it := 0; it < m; it++ {
			xi := x[it]
			yi := y[it]
			for xi >= t[lz+1] && lz != nc-1 {
				lz++
			}
			bsplineValues(t, k, xi, lz, &h)
			copy(q[it], h[:k1])
			for i0 := 0; i0 < k1; i0++ {
				j0 := lz - k + i0
				piv := h[i0]
				if piv == 0 {
					continue
				}
				var cos, sin float64
				cos, sin, a[j0][0] = givens(piv, a[j0][0])
				yi, z[j0] = rotate(cos, sin, yi, z[j0])
				if i0 == k {
					break
				}
				for i1 := i0 + 1; i1 < k1; i1++ {
					h[i1], a[j0][i1-i0] = rotate(cos, sin, h[i1], a[j0][i1-i0])
				}
			}
			fp += yi * yi
		}
		if ier == -2 {
			fp0 = fp
		}
		c = backSolve(a, z, nc, k1)
		fpms = fp - s
		if math.Abs(fpms) < acc {
			return done(), nil
		}
		if fpms < 0 {
			break // under the target: smooth in stage 2
		}
		if n == nmax {
			// interpolating spline, residual cannot drop further
			return done(), nil
		}
		if n == nest {
			return nil, ErrStorage
		}
		if ier == 0 {
			npl1 := nplus * 2
			if fpold-fp > acc {
				npl1 = int(float64(nplus) * fpms / (fpold - fp))
			}
			nplus = min(nplus*2, max(npl1, nplus/2, 1))
		} else {
			nplus = 1
			ier = 0
		}
		fpold = fp
		// residual mass per knot interval, shared half-and-half at knots
		fpart := 0.0
		i := 0
		lb := k1
		nw := false
		for it := 0; it < m; it++ {
			if x[it] >= t[lb] && lb <= nc-1 {
				nw = true
				lb++
			}
			l0 := lb - k2
			term := floats.Dot(c[l0+1:l0+1+k1], q[it]) - y[it]
			term *= term
			fpart += term
			if nw {
				store := 0.5 * term
				fpint[i] = fpart - store
				i++
				fpart = store
				nw = false
			}
		}
		fpint[nrint-1] = fpart
		for l := 0; l < nplus; l++ {
			n, nrint = insertKnot(x, t, n, fpint, nrdata, nrint, k)
			if n == nmax || n == nest {
				break
			}
		}
	}

	// The least-squares polynomial is already within the target.
	if ier == -2 {
		return done(), nil
	}

	// Stage 2: iterate the smoothing parameter p until f(p) = s, rotating
	// the k-th derivative penalty rows (weight 1/p) into the triangle.
	nc := n - k1
	b := penaltyRows(t, n, k2)
	n8 := n - nmin
	p1, f1 := 0.0, fp0-s
	p3, f3 := -1.0, fpms
	p := 0.0
	for i := 0; i < nc; i++ {
		p += a[i][0]
	}
	p = float64(nc) / p
	ich1, ich3 := false, false
	g := make([][]float64, nc)
	for i := range g {
		g[i] = make([]float64, k2)
	}
	c2 := make([]float64, nc)
	var hp [7]float64
	for itr := 1; itr <= maxit; itr++ {
		pinv := 1 / p
		for i := 0; i < nc; i++ {
			c2[i] = z[i]
			g[i][k2-1] = 0
			copy(g[i][:k1], a[i])
		}
		for it := 0; it < n8; it++ {
			for i := 0; i < k2; i++ {
				hp[i] = b[it][i] * pinv
			}
			yi := 0.0
			for j := it; j < nc; j++ {
				piv := hp[0]
				var cos, sin float64
				cos, sin, g[j][0] = givens(piv, g[j][0])
				yi, c2[j] = rotate(cos, sin, yi, c2[j])
				if j == nc-1 {
					break
				}
				i2 := k1
				if j > n8-1 {
					i2 = nc - 1 - j
				}
				for i := 1; i <= i2; i++ {
					hp[i], g[j][i] = rotate(cos, sin, hp[i], g[j][i])
					hp[i-1] = hp[i]
				}
				hp[i2] = 0
			}
		}
		c = backSolve(g, c2, nc, k2)
		fp = 0
		lb := k1
		for it := 0; it < m; it++ {
			if x[it] >= t[lb] && lb <= nc-1 {
				lb++
			}
			l0 := lb - k2
			term := floats.Dot(c[l0+1:l0+1+k1], q[it]) - y[it]
			fp += term * term
		}
		fpms = fp - s
		if math.Abs(fpms) < acc {
			return done(), nil
		}
		if itr == maxit {
			return nil, ErrNoConverge
		}
		p2, f2 := p, fpms
		if !ich3 {
			if f2-f3 <= acc {
				// initial p too large
				p3, f3 = p2, f2
				p = p2 * 0.04
				if p <= p1 {
					p = p1*0.9 + p2*0.1
				}
				continue
			}
			if f2 < 0 {
				ich3 = true
			}
		}
		if !ich1 {
			if f1-f2 <= acc {
				// initial p too small
				p1, f1 = p2, f2
				p = p2 / 0.04
				if p3 >= 0 && p >= p3 {
					p = p2*0.1 + p3*0.9
				}
				continue
			}
			if f2 > 0 {
				ich1 = true
			}
		}
		if f2 >= f1 || f2 <= f3 {
			return nil, ErrNoConverge
		}
		p, p1, f1, p3, f3 = interpolateRoot(p1, f1, p2, f2, p3, f3)
	}
	return nil, ErrNoConverge
}
