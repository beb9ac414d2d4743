package booking

import "fmt"

const (
	msgFillAllFields   = "Please fill in all fields."
	msgSlotUnavailable = "The selected time slot is not available. Please choose another time."
	msgModalClosed     = "Booking modal is not open"
)

func confirmedMessage(b Booking) string {
	return fmt.Sprintf("Booking confirmed for %s at %s. Thank you, %s!", b.Date, b.Time, b.UserName)
}
