package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/izthiaka/loumaa/internal/model"
)

// Profile is the read-only projection returned by the "me" endpoint.
type Profile struct {
	Matricule string       `json:"matricule"`
	Name      string       `json:"name"`
	Gender    string       `json:"gender,omitempty"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone"`
	Status    model.Status `json:"status"`
	Photo     string       `json:"photo,omitempty"`

	Role    *RoleSummary    `json:"role,omitempty"`
	Session *SessionSummary `json:"session,omitempty"`

	// TODO: populate once role permissions are modelled.
	Authorizations []string `json:"authorizations"`
}

// RoleSummary is the role reference exposed on the profile.
type RoleSummary struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// SessionSummary is the active-session view exposed on the profile.
type SessionSummary struct {
	Device    string    `json:"device"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *authUsecase) Profile(ctx context.Context, user *model.User) (*Profile, error) {
	profile := &Profile{
		Matricule:      user.Matricule,
		Name:           user.Name,
		Gender:         user.Gender,
		Email:          user.Email,
		Phone:          user.Phone,
		Status:         user.Status,
		Photo:          user.Photo,
		Authorizations: []string{},
	}

	role, err := u.roleRepo.GetByID(ctx, user.Role)
	switch {
	case err == nil:
		profile.Role = &RoleSummary{Name: role.Name, Code: role.Code}
	case errors.Is(err, mongo.ErrNoDocuments):
		// A dangling role reference is tolerated on reads.
	default:
		return nil, fmt.Errorf("look up role: %w", err)
	}

	session, err := u.sessionRepo.GetByUser(ctx, user.ID)
	switch {
	case err == nil:
		profile.Session = &SessionSummary{Device: session.Device, UpdatedAt: session.UpdatedAt}
	case errors.Is(err, mongo.ErrNoDocuments):
	default:
		return nil, fmt.Errorf("look up session: %w", err)
	}

	return profile, nil
}
