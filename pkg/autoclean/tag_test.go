package autoclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Tag
		wantErr string
	}{
		{name: "empty", value: "", want: Tag{}},
		{name: "blank", value: "  ", want: Tag{}},
		{name: "skip", value: "skip", want: Tag{Skip: true}},
		{name: "readonly and skip", value: "readonly, skip", want: Tag{Skip: true, ReadOnly: true}},
		{name: "base", value: "base", want: Tag{Base: true}},
		{name: "embed", value: "embed", want: Tag{Embed: true}},
		{name: "property", value: "property", want: Tag{Property: true}},
		{name: "named property", value: "property=Total", want: Tag{Property: true, PropertyName: "Total"}},
		{
			name:  "property with setter",
			value: "property,access=public,set=protected-private",
			want:  Tag{Property: true, Access: AccessPublic, Setter: AccessProtectedPrivate},
		},
		{name: "access", value: "access=internal", want: Tag{Access: AccessInternal}},
		{name: "empty option", value: "skip,,readonly", wantErr: "empty option"},
		{name: "duplicate", value: "skip,skip", wantErr: "duplicate option"},
		{name: "flag with value", value: "skip=true", wantErr: "option takes no value"},
		{name: "bad property name", value: "property=1st", wantErr: "invalid property name"},
		{name: "empty property name", value: "property=", wantErr: "invalid property name"},
		{name: "unknown level", value: "access=friend", wantErr: `unknown access level "friend"`},
		{name: "unknown option", value: "omitempty", wantErr: "unknown option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTag(tt.value)
			if tt.wantErr != "" {
				var tagErr *TagError
				require.ErrorAs(t, err, &tagErr)
				assert.Equal(t, tt.wantErr, tagErr.Reason)
				assert.Equal(t, tt.value, tagErr.Tag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropertyName(t *testing.T) {
	assert.Equal(t, "Count", PropertyName("count"))
	assert.Equal(t, "Count", PropertyName("Count"))
	assert.Equal(t, "Ärger", PropertyName("ärger"))
	assert.Equal(t, "_x", PropertyName("_x"))
	assert.Equal(t, "", PropertyName(""))
}

func TestParseAccessLevel(t *testing.T) {
	for level, name := range accessLevelNames {
		got, err := ParseAccessLevel(name)
		require.NoError(t, err)
		assert.Equal(t, level, got)
		assert.Equal(t, name, level.String())
		assert.NotZero(t, level.Visibility())
	}

	_, err := ParseAccessLevel("Public")
	assert.Error(t, err)
	assert.Equal(t, "AccessLevel(9)", AccessLevel(9).String())
	assert.Zero(t, AccessLevel(9).Visibility())
}
