package attach

import apperrors "vizier/internal/errors"

var (
	errEmptySeries    = apperrors.ValidationErrorf("empty series")
	errNegativeSeries = apperrors.ValidationErrorf("series contains negative values")
	errZeroSum        = apperrors.ValidationErrorf("series sums to zero")
	errTooFewSamples  = apperrors.ValidationErrorf("too few samples for normality test")
)
