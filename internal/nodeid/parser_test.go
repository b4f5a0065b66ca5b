// internal/nodeid/parser_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
	}{
		{name: "simple name", raw: "sma20"},
		{name: "with hyphen and underscore", raw: "entry-long_1"},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - contains dot", raw: "a.b", expectErr: true},
		{name: "error - just hyphen", raw: "-", expectErr: true},
		{name: "error - whitespace", raw: "a b", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Validate(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, ID(tc.raw), id)
		})
	}
}

func TestParsePortRef(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expectErr   bool
		expectedRef PortRef
	}{
		{
			name:        "simple reference",
			raw:         "sma20.value",
			expectedRef: PortRef{Node: "sma20", Port: "value"},
		},
		{
			name:        "camel case port",
			raw:         "bands.upperBand",
			expectedRef: PortRef{Node: "bands", Port: "upperBand"},
		},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - missing port", raw: "sma20.", expectErr: true},
		{name: "error - missing node", raw: ".value", expectErr: true},
		{name: "error - no dot", raw: "sma20", expectErr: true},
		{name: "error - nested path", raw: "a.b.value", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := ParsePortRef(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedRef, ref)
		})
	}
}

func TestPortRef_RoundTrip(t *testing.T) {
	testRefs := []string{
		"close.value",
		"bands.lowerBand",
		"and-1.true",
	}

	for _, raw := range testRefs {
		t.Run(raw, func(t *testing.T) {
			ref, err := ParsePortRef(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, ref.String())
		})
	}
}

func TestPortRef_IsZero(t *testing.T) {
	assert.True(t, PortRef{}.IsZero())
	assert.False(t, NewPortRef("a", "value").IsZero())
}
