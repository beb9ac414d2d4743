package booking

import "time"

const (
	clockLayout  = "15:04"
	slotInterval = time.Hour
)

// GenerateTimeSlots lists the hourly start times from open whose whole hour
// ends by close. Both bounds are "HH:MM"; unparseable bounds or a window
// shorter than one slot yield an empty list.
func GenerateTimeSlots(open, close string) []string {
	start, err := time.Parse(clockLayout, open)
	if err != nil {
		return []string{}
	}
	end, err := time.Parse(clockLayout, close)
	if err != nil {
		return []string{}
	}

	slots := make([]string, 0)
	for t := start; !t.Add(slotInterval).After(end); t = t.Add(slotInterval) {
		slots = append(slots, t.Format(clockLayout))
	}
	return slots
}
