package models

// Submission is the POST /api/contact payload. One struct covers both form
// variants: the booking form sends date/serviceType/guests, the simple
// contact form sends subject/message. The underscored fields are anti-spam
// metadata injected by the form script and are never forwarded anywhere.
type Submission struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email,max=254"`
	Phone string `json:"phone" binding:"required,min=10,max=30"`

	// Booking variant.
	Date        string `json:"date,omitempty" binding:"omitempty,max=40"`
	ServiceType string `json:"serviceType,omitempty" binding:"omitempty,max=60"`
	Guests      string `json:"guests,omitempty" binding:"omitempty,max=20"`

	// Simple-contact variant.
	Subject string `json:"subject,omitempty" binding:"omitempty,max=100"`
	Message string `json:"message,omitempty"`

	// Anti-spam metadata.
	Honeypot       string `json:"_honeypot,omitempty"`
	RenderedAtMS   int64  `json:"_timestamp,omitempty"`
	ChallengeToken string `json:"_challengeToken,omitempty"`
}

// IsBooking reports whether the submission came from the booking form.
// All three booking fields must be present; anything less is treated as a
// general inquiry.
func (s *Submission) IsBooking() bool {
	return s.Date != "" && s.ServiceType != "" && s.Guests != ""
}

// CleanSubmission is the subset of Submission handed to the notifier once a
// submission is accepted, with the anti-spam metadata stripped.
type CleanSubmission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
	Guests      string `json:"guests,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Message     string `json:"message,omitempty"`
	Booking     bool   `json:"booking"`
}

// Clean derives the notifier-facing view of the submission.
func (s *Submission) Clean() CleanSubmission {
	return CleanSubmission{
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Date:        s.Date,
		ServiceType: s.ServiceType,
		Guests:      s.Guests,
		Subject:     s.Subject,
		Message:     s.Message,
		Booking:     s.IsBooking(),
	}
}
