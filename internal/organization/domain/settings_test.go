package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NotNil(t, s.MaxMembers())
	assert.Equal(t, 100, *s.MaxMembers())
	assert.Equal(t, "member", s.DefaultUserRole())
	assert.True(t, s.RequireEmailVerification())
	assert.False(t, s.AllowPublicDebates())
	assert.Equal(t, "organization", s.DefaultDebateVisibility())
}

func TestSettingsImmutability(t *testing.T) {
	base := DefaultSettings()
	changed := base.With(SettingMaxMembers, 5)

	assert.Equal(t, 100, *base.MaxMembers())
	assert.Equal(t, 5, *changed.MaxMembers())
	assert.False(t, base.Equal(changed))
}

func TestSettingsWithNilRemovesKey(t *testing.T) {
	s := DefaultSettings().With(SettingMaxMembers, nil)
	assert.Nil(t, s.MaxMembers())
}

func TestSettingsMaxMembersNumericForms(t *testing.T) {
	// A JSON round trip turns numbers into float64.
	for _, v := range []any{42, int32(42), int64(42), float64(42), float32(42)} {
		s := SettingsFrom(map[string]any{SettingMaxMembers: v})
		require.NotNil(t, s.MaxMembers())
		assert.Equal(t, 42, *s.MaxMembers())
	}

	s := SettingsFrom(map[string]any{SettingMaxMembers: "lots"})
	assert.Nil(t, s.MaxMembers())
}

func TestSettingsUnknownKeysRoundTrip(t *testing.T) {
	s := DefaultSettings().With("theme", "dark")
	m := s.ToMap()
	assert.Equal(t, "dark", m["theme"])

	restored := SettingsFrom(m)
	assert.True(t, s.Equal(restored))
}

func TestSettingsToMapIsACopy(t *testing.T) {
	s := DefaultSettings()
	m := s.ToMap()
	m[SettingMaxMembers] = 1
	assert.Equal(t, 100, *s.MaxMembers())
}

func TestSettingsFallbacksOnWrongTypes(t *testing.T) {
	s := SettingsFrom(map[string]any{
		SettingDefaultUserRole:          7,
		SettingRequireEmailVerification: "yes",
	})
	assert.Equal(t, "member", s.DefaultUserRole())
	assert.True(t, s.RequireEmailVerification())
}
