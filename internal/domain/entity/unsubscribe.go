package entity

import "time"

// Unsubscribe records a mailing-list opt-out. Tokens are single-use and
// generated at send time; a row's presence is enough to exclude its email
// from future digest dispatch.
type Unsubscribe struct {
	Email          string
	Token          string
	UnsubscribedAt time.Time
}

// Validate checks that Email and Token are both present.
func (u *Unsubscribe) Validate() error {
	if u.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if u.Token == "" {
		return &ValidationError{Field: "token", Message: "token is required"}
	}
	return nil
}
