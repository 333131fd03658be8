package domain

import "errors"

var (
	ErrInvalidVessel          = errors.New("invalid vessel")
	ErrUnknownOrder           = errors.New("unknown speed order")
	ErrCrewPositionOutOfRange = errors.New("crew position out of range")
	ErrVesselNotFound         = errors.New("vessel not found")
	ErrVersionConflict        = errors.New("vessel version conflict")
)
