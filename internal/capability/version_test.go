package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"7.4.1", Version{7, 4, 1}, false},
		{"7.4", Version{7, 4, 0}, false},
		{"7", Version{7, 0, 0}, false},
		{"v2.43.0", Version{2, 43, 0}, false},
		{"7.5.0-preview.3", Version{7, 5, 0}, false},
		{" 7.0.0 ", Version{7, 0, 0}, false},
		{"", Version{}, true},
		{"seven", Version{}, true},
		{"beta-1.2", Version{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseVersion(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractVersionFromToolOutput(t *testing.T) {
	t.Parallel()

	v, ok := ExtractVersion("git version 2.43.0")
	require.True(t, ok)
	assert.Equal(t, Version{2, 43, 0}, v)

	v, ok = ExtractVersion("PowerShell 7.4.1")
	require.True(t, ok)
	assert.Equal(t, Version{7, 4, 1}, v)

	_, ok = ExtractVersion("command not found")
	assert.False(t, ok)
}

func TestVersionCompareAndAtLeast(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Version{7, 0, 0}.Compare(Version{7, 0, 0}))
	assert.Equal(t, -1, Version{6, 9, 9}.Compare(Version{7, 0, 0}))
	assert.Equal(t, 1, Version{7, 0, 1}.Compare(Version{7, 0, 0}))

	assert.True(t, Version{7, 4, 1}.AtLeast(Version{7, 0, 0}))
	assert.True(t, Version{7, 0, 0}.AtLeast(Version{7, 0, 0}))
	assert.False(t, Version{6, 2, 0}.AtLeast(Version{7, 0, 0}))
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "7.4.1", Version{7, 4, 1}.String())
}
