package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debatehub/orgservice/internal/domain"
)

func TestNewName(t *testing.T) {
	n, err := NewName("  Acme Corp  ")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", n.String())

	for _, tc := range []struct {
		in   string
		code string
	}{
		{"", "organization.name.empty"},
		{"   ", "organization.name.empty"},
		{"A", "organization.name.tooShort"},
		{strings.Repeat("x", 101), "organization.name.tooLong"},
		{"Acme <script>", "organization.name.invalidCharacters"},
	} {
		_, err := NewName(tc.in)
		require.Error(t, err, tc.in)
		assert.Equal(t, tc.code, domain.CodeOf(err), tc.in)
	}
}

func TestNewNameAllowsCommonPunctuation(t *testing.T) {
	for _, in := range []string{"Acme Corp", "dev-team_2", "St. Mary's"} {
		_, err := NewName(in)
		if strings.Contains(in, "'") {
			// Apostrophes are outside the allowed set.
			assert.Error(t, err, in)
			continue
		}
		assert.NoError(t, err, in)
	}
}

func TestNewDescription(t *testing.T) {
	d, err := NewDescription("  about us  ")
	require.NoError(t, err)
	assert.Equal(t, "about us", d.String())

	_, err = NewDescription(strings.Repeat("x", 501))
	assert.Equal(t, "organization.description.tooLong", domain.CodeOf(err))

	empty, err := NewDescription("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.True(t, EmptyDescription().IsEmpty())
}

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-uuid")
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
