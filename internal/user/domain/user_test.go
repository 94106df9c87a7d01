package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	email, err := NewEmail("jane.doe@example.com")
	require.NoError(t, err)
	first, err := NewName("Jane")
	require.NoError(t, err)
	last, err := NewName("Doe")
	require.NoError(t, err)
	u, err := NewUser(NewID(), email, first, last, clock.NewSystemClock())
	require.NoError(t, err)
	return u
}

func TestNewUserStartsActiveUnverified(t *testing.T) {
	u := newTestUser(t)
	assert.Equal(t, StatusActive, u.Status())
	assert.False(t, u.EmailVerified())
	assert.False(t, u.CanJoinOrganizations())
}

func TestEmailNormalization(t *testing.T) {
	email, err := NewEmail("  Jane.DOE@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", email.String())

	for _, in := range []string{"", "no-at-sign", "a@b", "two@@example.com", "spaces in@example.com"} {
		_, err := NewEmail(in)
		assert.Error(t, err, in)
	}
}

func TestCanJoinOrganizations(t *testing.T) {
	u := newTestUser(t)
	u.VerifyEmail()
	assert.True(t, u.CanJoinOrganizations())

	u.Suspend()
	assert.False(t, u.CanJoinOrganizations())

	require.NoError(t, u.Reactivate())
	assert.True(t, u.CanJoinOrganizations())
}

func TestChangeEmailResetsVerification(t *testing.T) {
	u := newTestUser(t)
	u.VerifyEmail()

	same := u.Email()
	u.ChangeEmail(same)
	assert.True(t, u.EmailVerified())

	newEmail, err := NewEmail("jane@other.example.com")
	require.NoError(t, err)
	u.ChangeEmail(newEmail)
	assert.False(t, u.EmailVerified())
	assert.Equal(t, newEmail, u.Email())
}

func TestBannedUserCannotReactivate(t *testing.T) {
	u := newTestUser(t)
	u.Ban()
	assert.Equal(t, StatusBanned, u.Status())

	err := u.Reactivate()
	assert.Equal(t, "user.banned.cannotReactivate", domain.CodeOf(err))
	assert.Equal(t, StatusBanned, u.Status())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" active ")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	_, err = ParseStatus("retired")
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestNames(t *testing.T) {
	u := newTestUser(t)
	assert.Equal(t, "Jane Doe", u.FullName())
	assert.Equal(t, "Jane D.", u.DisplayName())
}

func TestDisplayNameHandlesMultibyteLastName(t *testing.T) {
	email, err := NewEmail("jane@example.com")
	require.NoError(t, err)
	first, err := NewName("Jane")
	require.NoError(t, err)
	last, err := NewName("Ølsen")
	require.NoError(t, err)
	u, err := NewUser(NewID(), email, first, last, clock.NewSystemClock())
	require.NoError(t, err)

	assert.Equal(t, "Jane Ø.", u.DisplayName())
}

func TestUserTimestampsFollowClock(t *testing.T) {
	start := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFakeClock(start)

	email, err := NewEmail("jane@example.com")
	require.NoError(t, err)
	first, err := NewName("Jane")
	require.NoError(t, err)
	last, err := NewName("Doe")
	require.NoError(t, err)
	u, err := NewUser(NewID(), email, first, last, clk)
	require.NoError(t, err)
	assert.Equal(t, start, u.CreatedAt())
	assert.Equal(t, start, u.UpdatedAt())

	clk.Advance(time.Minute)
	u.VerifyEmail()
	assert.Equal(t, start.Add(time.Minute), u.UpdatedAt())
	assert.Equal(t, start, u.CreatedAt())
}
