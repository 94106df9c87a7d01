package domain

import "reflect"

// Well-known settings keys. The map is open: unknown keys round-trip
// untouched.
const (
	SettingMaxMembers               = "maxMembers"
	SettingDefaultUserRole          = "defaultUserRole"
	SettingRequireEmailVerification = "requireEmailVerification"
	SettingAllowPublicDebates       = "allowPublicDebates"
	SettingDefaultDebateVisibility  = "defaultDebateVisibility"
)

// Settings is an immutable key/value configuration map. Every mutation
// returns a new instance.
type Settings struct {
	values map[string]any
}

func DefaultSettings() Settings {
	return Settings{values: map[string]any{
		SettingMaxMembers:               100,
		SettingDefaultUserRole:          "member",
		SettingRequireEmailVerification: true,
		SettingAllowPublicDebates:       false,
		SettingDefaultDebateVisibility:  "organization",
	}}
}

// SettingsFrom copies the given map. Nil yields empty settings.
func SettingsFrom(values map[string]any) Settings {
	s := Settings{values: make(map[string]any, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// With returns a copy with key set to value; a nil value removes the key.
func (s Settings) With(key string, value any) Settings {
	out := SettingsFrom(s.values)
	if value == nil {
		delete(out.values, key)
	} else {
		out.values[key] = value
	}
	return out
}

// WithAll returns a copy with every entry of updates applied.
func (s Settings) WithAll(updates map[string]any) Settings {
	out := SettingsFrom(s.values)
	for k, v := range updates {
		out.values[k] = v
	}
	return out
}

func (s Settings) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// MaxMembers returns the member limit, or nil for unlimited. Numeric values
// survive a JSON round trip as float64, so all integral forms are accepted.
func (s Settings) MaxMembers() *int {
	v, ok := s.values[SettingMaxMembers]
	if !ok || v == nil {
		return nil
	}
	if n, ok := asInt(v); ok {
		return &n
	}
	return nil
}

func (s Settings) DefaultUserRole() string {
	if v, ok := s.values[SettingDefaultUserRole].(string); ok && v != "" {
		return v
	}
	return "member"
}

func (s Settings) RequireEmailVerification() bool {
	if v, ok := s.values[SettingRequireEmailVerification].(bool); ok {
		return v
	}
	return true
}

func (s Settings) AllowPublicDebates() bool {
	if v, ok := s.values[SettingAllowPublicDebates].(bool); ok {
		return v
	}
	return false
}

func (s Settings) DefaultDebateVisibility() string {
	if v, ok := s.values[SettingDefaultDebateVisibility].(string); ok && v != "" {
		return v
	}
	return "organization"
}

// ToMap returns a defensive copy of all settings.
func (s Settings) ToMap() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s Settings) Equal(other Settings) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	return reflect.DeepEqual(s.values, other.values)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	default:
		return 0, false
	}
}
