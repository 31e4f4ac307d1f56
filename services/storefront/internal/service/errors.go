package service

import (
	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
)

// localize returns a copy of err whose client-facing message is msg. The
// code, status and wrapped error are kept so errors.Is still matches.
func localize(err *apperrors.AppError, msg string) *apperrors.AppError {
	cpy := *err
	cpy.Message = msg
	return &cpy
}
