package booking

import "errors"

var (
	ErrModalClosed     = errors.New("booking modal is not open")
	ErrMissingFields   = errors.New("booking form is incomplete")
	ErrSlotUnavailable = errors.New("time slot is already booked")
	ErrCorruptBookings = errors.New("stored bookings are not valid JSON")
)
