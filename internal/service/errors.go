package service

import "github.com/vedran77/circle/internal/domain"

var (
	ErrUnauthorized       = domain.NewError(domain.KindUnauthenticated, "Token is missing, invalid or expired")
	ErrInvalidCredentials = domain.NewError(domain.KindUnauthenticated, "User with this login and password was not found")
	ErrUserExists         = domain.NewError(domain.KindConflict, "User with this email, phone or login is already registered")
	ErrPhoneTaken         = domain.NewError(domain.KindConflict, "User with this phone is already registered")
	ErrUnknownCountry     = domain.NewError(domain.KindValidation, "Country with this code was not found")
	ErrUnknownRegion      = domain.NewError(domain.KindValidation, "Region must be one of Europe, Africa, Americas, Oceania, Asia")
	ErrCountryNotFound    = domain.NewError(domain.KindNotFoundOrForbidden, "Country with this code was not found")
	ErrPasswordMismatch   = domain.NewError(domain.KindForbidden, "Old password does not match")
	ErrUserNotFound       = domain.NewError(domain.KindNotFoundOrForbidden, "User with this login was not found")
	ErrProfileNotFound    = domain.NewError(domain.KindNotFoundOrForbidden, "Profile not found or not accessible")
	ErrPostNotFound       = domain.NewError(domain.KindNotFoundOrForbidden, "Post not found or not accessible")
	ErrInvalidReaction    = domain.NewError(domain.KindValidation, "Reaction must be like or dislike")
)
