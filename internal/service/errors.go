package service

import (
	"errors"
	"fmt"

	"github.com/festivore/festival-api/internal/domain"
)

// Common service errors
var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, so login failures carry no account-enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotOrganizer indicates the caller owns no organizer profile and may
	// not perform organizer-scoped operations.
	ErrNotOrganizer = fmt.Errorf("%w: organizer profile not found for user", domain.ErrForbidden)

	// ErrFestivalNotOwned indicates the caller's organizer profile does not
	// own the target festival.
	ErrFestivalNotOwned = fmt.Errorf("%w: you do not own this festival", domain.ErrForbidden)
)
