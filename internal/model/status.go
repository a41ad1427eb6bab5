package model

import "fmt"

// Status is the lifecycle state of a user account. Only ACTIVE accounts may
// sign in; transitions between states are administrative operations.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusActive      Status = "ACTIVE"
	StatusDeactivated Status = "DEACTIVATED"
	StatusBanned      Status = "BANNED"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusActive, StatusDeactivated, StatusBanned:
		return Status(s), nil
	}
	return "", fmt.Errorf("%q is not a valid account status", s)
}

func (s Status) String() string { return string(s) }
