package booking

// Booking is one confirmed reservation of a one-hour slot. Field names
// follow the stored blob format.
type Booking struct {
	StudioID   int    `json:"studioId"`
	StudioName string `json:"studioName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	UserName   string `json:"userName"`
	UserEmail  string `json:"userEmail"`
}

// Occupies reports whether b holds the given studio slot.
func (b Booking) Occupies(studioID int, date, time string) bool {
	return b.StudioID == studioID && b.Date == date && b.Time == time
}

// Draft is the booking form as the user is filling it in.
type Draft struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

func (d Draft) complete() bool {
	return d.Date != "" && d.Time != "" && d.UserName != "" && d.UserEmail != ""
}
