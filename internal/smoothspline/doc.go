// Package smoothspline fits cubic smoothing splines to tabulated data and
// evaluates them, including exact definite integrals of the fitted curve.
//
// The fit follows the algorithm of Dierckx ("Curve and Surface Fitting with
// Splines", Oxford, 1993): knots are inserted one at a time in the interval
// carrying the largest residual mass until the weighted sum of squared
// residuals of the least-squares spline drops below the smoothing factor s,
// after which the smoothing parameter p is iterated so that the penalized
// fit satisfies f(p) = s. The least-squares subproblems are solved by
// Givens rotations on the banded B-spline observation matrix.
//
// The result is a spline in B-spline form (knot vector plus coefficients).
// Definite integrals are computed per knot span with two-point
// Gauss-Legendre quadrature, which is exact for cubic pieces; integration
// limits are clipped to the spline support and the orientation sign of the
// limits is preserved.
package smoothspline
