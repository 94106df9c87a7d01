package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
)

// Status is the user lifecycle state.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusBanned    Status = "BANNED"
)

func (s Status) String() string { return string(s) }

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusSuspended:
		return StatusSuspended, nil
	case StatusBanned:
		return StatusBanned, nil
	default:
		return "", domain.NewValidation("user.status.invalid", "invalid user status %q", s)
	}
}

// User is the membership-facing view of a user.
type User struct {
	domain.Entity
	id            ID
	email         Email
	firstName     Name
	lastName      Name
	status        Status
	emailVerified bool
	clk           clock.Clock
}

func NewUser(id ID, email Email, firstName, lastName Name, clk clock.Clock) (*User, error) {
	if id.IsZero() {
		return nil, domain.NewValidation("user.id.required", "user id is required")
	}
	if email.IsZero() || firstName.IsZero() || lastName.IsZero() {
		return nil, domain.NewValidation("user.incomplete", "email, first name and last name are required")
	}
	return &User{
		Entity:        domain.NewEntity(clk.Now()),
		id:            id,
		email:         email,
		firstName:     firstName,
		lastName:      lastName,
		status:        StatusActive,
		emailVerified: false,
		clk:           clk,
	}, nil
}

// RestoreUser rebuilds a user from persisted state.
func RestoreUser(id ID, email Email, firstName, lastName Name, status Status, emailVerified bool, createdAt, updatedAt time.Time, clk clock.Clock) *User {
	return &User{
		Entity:        domain.RestoreEntity(createdAt, updatedAt),
		id:            id,
		email:         email,
		firstName:     firstName,
		lastName:      lastName,
		status:        status,
		emailVerified: emailVerified,
		clk:           clk,
	}
}

func (u *User) UpdateProfile(firstName, lastName Name) {
	changed := false
	if u.firstName != firstName {
		u.firstName = firstName
		changed = true
	}
	if u.lastName != lastName {
		u.lastName = lastName
		changed = true
	}
	if changed {
		u.Touch(u.clk.Now())
	}
}

// ChangeEmail resets verification; the new address must be verified again.
func (u *User) ChangeEmail(email Email) {
	if u.email == email {
		return
	}
	u.email = email
	u.emailVerified = false
	u.Touch(u.clk.Now())
}

func (u *User) VerifyEmail() {
	if u.emailVerified {
		return
	}
	u.emailVerified = true
	u.Touch(u.clk.Now())
}

func (u *User) Suspend() {
	if u.status == StatusSuspended {
		return
	}
	u.status = StatusSuspended
	u.Touch(u.clk.Now())
}

func (u *User) Reactivate() error {
	if u.status == StatusActive {
		return nil
	}
	if u.status == StatusBanned {
		return domain.NewRuleViolation("user.banned.cannotReactivate", "cannot reactivate a banned user")
	}
	u.status = StatusActive
	u.Touch(u.clk.Now())
	return nil
}

func (u *User) Ban() {
	if u.status == StatusBanned {
		return
	}
	u.status = StatusBanned
	u.Touch(u.clk.Now())
}

// CanJoinOrganizations reports whether the user is eligible for membership:
// active and with a verified email address.
func (u *User) CanJoinOrganizations() bool {
	return u.status == StatusActive && u.emailVerified
}

func (u *User) FullName() string {
	return u.firstName.String() + " " + u.lastName.String()
}

// DisplayName abbreviates the last name to its first letter.
func (u *User) DisplayName() string {
	r, _ := utf8.DecodeRuneInString(u.lastName.String())
	return u.firstName.String() + " " + strings.ToUpper(string(r)) + "."
}

func (u *User) ID() ID              { return u.id }
func (u *User) Email() Email        { return u.email }
func (u *User) FirstName() Name     { return u.firstName }
func (u *User) LastName() Name      { return u.lastName }
func (u *User) Status() Status      { return u.status }
func (u *User) IsActive() bool      { return u.status == StatusActive }
func (u *User) EmailVerified() bool { return u.emailVerified }
