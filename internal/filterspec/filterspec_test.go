package filterspec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoClauses(t *testing.T) {
	spec, err := Parse("tag:role=db,instance-state-name=running")
	require.NoError(t, err)

	assert.Equal(t, []string{"tag:role", "instance-state-name"}, spec.Names())
	assert.Equal(t, []string{"db"}, spec.Values("tag:role"))
	assert.Equal(t, []string{"running"}, spec.Values("instance-state-name"))
}

func TestParse_MultiValue(t *testing.T) {
	spec, err := Parse("tag:env=prod:staging")
	require.NoError(t, err)

	assert.Equal(t, []string{"tag:env"}, spec.Names())
	assert.Equal(t, []string{"prod", "staging"}, spec.Values("tag:env"))
}

func TestParse_RepeatedNameUnionsValues(t *testing.T) {
	spec, err := Parse("tag:env=prod,tag:env=staging:prod")
	require.NoError(t, err)

	assert.Equal(t, 1, spec.Len())
	assert.Equal(t, []string{"prod", "staging"}, spec.Values("tag:env"))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		clause string
	}{
		{"no equals", "tag:role", "tag:role"},
		{"double equals", "tag:role=db=extra", "tag:role=db=extra"},
		{"bad middle clause", "tag:role=db,oops,tag:env=prod", "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.clause, parseErr.Clause)
			assert.Contains(t, err.Error(), tt.clause)
		})
	}
}

func TestSpec_String(t *testing.T) {
	spec, err := Parse("tag:env=prod:staging,tag:role=db")
	require.NoError(t, err)

	assert.Equal(t, "tag:env=prod:staging,tag:role=db", spec.String())
}
