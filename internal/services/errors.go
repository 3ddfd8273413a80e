package services

import (
	"errors"
	"fmt"

	"github.com/sabadesa/sabadesa-be/internal/models"
)

// Domain errors. Handlers map them to status codes.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid or expired")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrDuplicateNIK        = errors.New("identity number already registered in another activity")
	ErrAlreadyInEvent      = errors.New("identity number already registered in this activity")
	ErrUnsupportedFile     = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// DuplicateNIKError lists the other activities an identity number attended.
// It matches ErrDuplicateNIK with errors.Is.
type DuplicateNIKError struct {
	NIK        string
	Activities []models.ParticipationRecord
}

func (e *DuplicateNIKError) Error() string {
	return fmt.Sprintf("NIK %s is already registered in %d other activities", e.NIK, len(e.Activities))
}

func (e *DuplicateNIKError) Is(target error) bool {
	return target == ErrDuplicateNIK
}
