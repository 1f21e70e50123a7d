package store

import "time"

// Session represents the active user session state in memory. It exists only
// between login and logout (or inactivity expiry) and is never persisted.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// Document-service credentials obtained at login via the
	// client-credentials exchange. DriveID is resolved lazily on the first
	// catalog access and cached for the rest of the session.
	GraphToken string `json:"-"`
	SiteID     string `json:"site_id"`
	DriveID    string `json:"drive_id"`

	// LastActivity is slid forward on every authenticated request.
	LastActivity time.Time `json:"last_activity"`

	// Form is the in-progress record-authoring state.
	Form *FormState `json:"form"`
}

// Expired reports whether the session has been inactive longer than timeout
// as of now. Exactly at the boundary the session is still live.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}

// Touch slides the inactivity window.
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}
