package middleware

import (
	"net/http"

	"starhr/internal/shared/apperror"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New(apperror.CodeUnauthorized, "Token expired", http.StatusUnauthorized)
	ErrMissingClaim  = apperror.New(apperror.CodeUnauthorized, "Required claim missing from token", http.StatusUnauthorized)
)
