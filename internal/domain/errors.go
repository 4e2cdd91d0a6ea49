package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// Validation errors (блокируют финализацию, состояние не меняется)
var (
	ErrValidation                = errors.New("validation error")
	ErrClientNameRequired        = errors.New("client name is required")
	ErrReservationNumberRequired = errors.New("reservation number is required")
	ErrDatesRequired             = errors.New("start and end dates are required")
	ErrEmptySelection            = errors.New("at least one vehicle must be selected")
	ErrInvalidDate               = errors.New("invalid date format")
	ErrInvalidSeason             = errors.New("invalid season value")
)

// Vehicle errors
var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrInvalidVehicleData = errors.New("invalid vehicle data")
)

// Draft errors
var (
	ErrDraftNotFound      = errors.New("draft not found")
	ErrEntryNotFound      = errors.New("vehicle is not selected in this draft")
	ErrFinalizeInProgress = errors.New("finalize is already in progress for this draft")
)

// Quote errors
var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrArtifactNotFound = errors.New("quote has no rendered artifact")
	ErrRenderFailed     = errors.New("rendering service failed")
)

// Media errors
var (
	ErrMediaNotFound    = errors.New("media not found")
	ErrInvalidMediaData = errors.New("invalid media data")
)

// General errors
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)
