package autoclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagValues(t *testing.T) {
	assert.EqualValues(t, 1, Declared)
	assert.EqualValues(t, 2, Descendant)
	assert.EqualValues(t, 4, Inherited)

	assert.EqualValues(t, 1, Public)
	assert.EqualValues(t, 2, Protected)
	assert.EqualValues(t, 4, Private)
	assert.EqualValues(t, 8, Internal)
	assert.EqualValues(t, 16, ProtectedInternal)
	assert.EqualValues(t, 32, ProtectedPrivate)

	assert.EqualValues(t, 0, None)
	assert.EqualValues(t, 1, IncludeReadOnly)
	assert.EqualValues(t, 2, OverrideOptOut)
	assert.EqualValues(t, 4, DoNotDispose)
}

func TestFlagStrings(t *testing.T) {
	assert.Equal(t, "All", AllHierarchy.String())
	assert.Equal(t, "Declared|Inherited", (Declared | Inherited).String())
	assert.Equal(t, "0", Hierarchy(0).String())
	assert.Equal(t, "Descendant|0x8", (Descendant | 8).String())

	assert.Equal(t, "All", AllVisibility.String())
	assert.Equal(t, "NonPublic", NonPublic.String())
	assert.Equal(t, "Public|Private", (Public | Private).String())

	assert.Equal(t, "None", None.String())
	assert.Equal(t, "IncludeReadOnly|DoNotDispose", (IncludeReadOnly | DoNotDispose).String())
}

func TestParseFlags(t *testing.T) {
	h, err := ParseHierarchy("declared|Inherited")
	require.NoError(t, err)
	assert.Equal(t, Declared|Inherited, h)

	h, err = ParseHierarchy("all")
	require.NoError(t, err)
	assert.Equal(t, AllHierarchy, h)

	h, err = ParseHierarchy("")
	require.NoError(t, err)
	assert.Zero(t, h)

	v, err := ParseVisibility("public, protectedprivate")
	require.NoError(t, err)
	assert.Equal(t, Public|ProtectedPrivate, v)

	v, err = ParseVisibility("NonPublic")
	require.NoError(t, err)
	assert.Equal(t, NonPublic, v)

	o, err := ParseResetOptions("")
	require.NoError(t, err)
	assert.Equal(t, None, o)

	o, err = ParseResetOptions("includereadonly|overrideoptout")
	require.NoError(t, err)
	assert.Equal(t, IncludeReadOnly|OverrideOptOut, o)

	_, err = ParseHierarchy("declared|sideways")
	assert.EqualError(t, err, `unknown hierarchy "sideways"`)
	_, err = ParseVisibility("friend")
	assert.EqualError(t, err, `unknown visibility "friend"`)
	_, err = ParseResetOptions("force")
	assert.EqualError(t, err, `unknown reset option "force"`)
}

func TestFlagsRoundTrip(t *testing.T) {
	for h := Hierarchy(1); h <= AllHierarchy; h++ {
		got, err := ParseHierarchy(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}
	for v := Visibility(1); v <= AllVisibility; v++ {
		got, err := ParseVisibility(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
