// Package diskage estimates the evolutionary age of a protoplanetary disk
// from the slope alpha of its infrared spectral energy distribution.
//
// The estimate follows the empirical calibration of Liu et al. (2024): a
// cubic smoothing spline is fitted once through the published histogram of
// alpha values observed across a disk population with independently known
// ages, and the cumulative fraction under that curve, normalized by the
// integral over a fixed reference window, serves as the age proxy. The
// calibration data, the smoothing factor and the integration bounds are
// fixed constants from the paper and are not configurable.
//
// Input alpha values are expected in the range [-2.0, 4.8]. Values outside
// it are not an error: they are clamped to the nearest limit, the estimate
// proceeds with the clamped value, and a structured warning carrying the
// original value is emitted on the estimator's diagnostic channel.
//
// # Usage
//
// One-shot, via the shared default estimator:
//
//	age := diskage.Estimate(0.5) // Myr
//
// Or with an explicit estimator to control the warning channel:
//
//	est, err := diskage.NewEstimator(
//	    diskage.WithLogger(logger),
//	    diskage.WithWarningFunc(func(w diskage.Warning) { ... }),
//	)
//	if err != nil {
//	    ...
//	}
//	ages := est.EstimateAll(alphas)
//
// Estimators are immutable after construction and safe for concurrent use.
package diskage
