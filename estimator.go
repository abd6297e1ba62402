package diskage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-diskage/internal/smoothspline"
)

const (
	// Allowed input range for alpha. Values outside are clamped, not
	// rejected.
	alphaMin = -2.0
	alphaMax = 4.8

	// Upper integration bound: the maximum alpha of the calibration
	// histogram, as published. Kept as the published literal rather than
	// recomputed from the table; it lies slightly beyond the largest bin
	// center, and the integral clips to the spline support either way.
	alphaHistMax = 4.814672904812319

	// Smoothing factor of the calibration fit, tuned in the paper.
	smoothingFactor = 0.08

	// The age fraction is normalized by the spline integral over this
	// fixed reference window, taken from normFrom down to normTo.
	normFrom = -0.3
	normTo   = -1.6

	splineDegree = 3
)

// ErrCalibration reports an inconsistency in the embedded calibration
// table. It indicates a packaging bug, never a runtime condition.
var ErrCalibration = errors.New("diskage: invalid calibration table")

// WarningKind classifies an input-range warning.
type WarningKind int

const (
	// WarnTooSmall marks an input below the allowed lower limit.
	WarnTooSmall WarningKind = iota + 1
	// WarnTooLarge marks an input above the allowed upper limit.
	WarnTooLarge
)

// Warning records a silently corrected out-of-range input.
type Warning struct {
	Kind  WarningKind
	Alpha float64 // original input value
	Bound float64 // limit it was clamped to
}

// Estimator maps IR SED slopes to disk ages using the fixed calibration.
// It fits the calibration spline once at construction and is immutable
// afterwards, so a single Estimator may be shared across goroutines.
type Estimator struct {
	spline *smoothspline.Spline
	denom  float64
	log    *zap.Logger
	onWarn func(Warning)
}

// NewEstimator fits the calibration spline and precomputes the
// normalization integral.
func NewEstimator(opts ...Option) (*Estimator, error) {
	cfg := applyOptions(opts...)
	for i := 1; i < calibrationBins; i++ {
		if calibrationAlpha[i] <= calibrationAlpha[i-1] {
			return nil, fmt.Errorf("%w: bin centers not strictly increasing at index %d", ErrCalibration, i)
		}
	}
	for i, f := range calibrationFreq {
		if f < 0 {
			return nil, fmt.Errorf("%w: negative frequency at index %d", ErrCalibration, i)
		}
	}
	sp, err := smoothspline.Fit(calibrationAlpha[:], calibrationFreq[:], splineDegree, smoothingFactor)
	if err != nil {
		return nil, fmt.Errorf("diskage: calibration fit: %w", err)
	}
	return &Estimator{
		spline: sp,
		denom:  sp.Integral(normFrom, normTo),
		log:    cfg.log,
		onWarn: cfg.onWarn,
	}, nil
}

// Estimate returns the estimated disk age in Myr for the given IR SED
// slope. Inputs outside [-2.0, 4.8] are clamped to the nearest limit and
// reported on the warning channel; the returned age is then the age of the
// limit itself.
func (e *Estimator) Estimate(alpha float64) float64 {
	return e.spline.Integral(alphaHistMax, e.clamp(alpha)) * 2 / e.denom
}

// EstimateAll applies Estimate to each element independently. The result
// has the same length and order as the input, and each out-of-range
// element produces its own warning.
func (e *Estimator) EstimateAll(alphas []float64) []float64 {
	ints := make([]float64, len(alphas))
	for i, alpha := range alphas {
		ints[i] = e.spline.Integral(alphaHistMax, e.clamp(alpha))
	}
	out := make([]float64, len(alphas))
	vecmath.ScaleBlock(out, ints, 2)
	for i := range out {
		out[i] /= e.denom
	}
	return out
}

func (e *Estimator) clamp(alpha float64) float64 {
	switch {
	case alpha < alphaMin:
		e.warn("input alpha below allowed lower limit; clamped",
			Warning{Kind: WarnTooSmall, Alpha: alpha, Bound: alphaMin})
		return alphaMin
	case alpha > alphaMax:
		e.warn("input alpha above allowed upper limit; clamped",
			Warning{Kind: WarnTooLarge, Alpha: alpha, Bound: alphaMax})
		return alphaMax
	}
	return alpha
}

func (e *Estimator) warn(msg string, w Warning) {
	e.log.Warn(msg,
		zap.Float64("alpha", w.Alpha),
		zap.Float64("clampedTo", w.Bound),
	)
	if e.onWarn != nil {
		e.onWarn(w)
	}
}

var defaultEstimator = sync.OnceValue(func() *Estimator {
	e, err := NewEstimator()
	if err != nil {
		panic(fmt.Sprintf("diskage: building default estimator: %v", err))
	}
	return e
})

// Estimate converts an IR SED slope into a disk age in Myr using a shared
// default estimator whose warnings go to stderr.
func Estimate(alpha float64) float64 {
	return defaultEstimator().Estimate(alpha)
}

// EstimateAll is the vector form of [Estimate].
func EstimateAll(alphas []float64) []float64 {
	return defaultEstimator().EstimateAll(alphas)
}
