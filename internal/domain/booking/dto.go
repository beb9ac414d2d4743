package booking

// OpenRequest opens the modal for a studio of the session's catalog.
type OpenRequest struct {
	StudioID int `json:"studio_id" validate:"required,min=1"`
}

// DraftRequest binds the booking form. Fields may be empty while the user
// is typing; completeness is checked on confirm.
type DraftRequest struct {
	Date      string `json:"date" validate:"omitempty,isodate"`
	Time      string `json:"time" validate:"omitempty,hhmm"`
	UserName  string `json:"user_name" validate:"max=100"`
	UserEmail string `json:"user_email" validate:"omitempty,email,max=255"`
}

// ToDraft converts the request to a Draft.
func (r DraftRequest) ToDraft() Draft {
	return Draft{
		Date:      r.Date,
		Time:      r.Time,
		UserName:  r.UserName,
		UserEmail: r.UserEmail,
	}
}
