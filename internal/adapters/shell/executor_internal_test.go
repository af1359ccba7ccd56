package shell

import (
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name     string
		sysEnv   []string
		unitEnv  map[string]string
		expected []string
	}{
		{
			name:     "system only",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			expected: []string{"USER=test", "PATH=/bin"},
		},
		{
			name:     "unit override",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			unitEnv:  map[string]string{"USER": "reuse", "FOO": "bar"},
			expected: []string{"USER=reuse", "PATH=/bin", "FOO=bar"},
		},
		{
			name:     "unit expands system values",
			sysEnv:   []string{"PATH=/bin"},
			unitEnv:  map[string]string{"PATH": "/tools" + sep + "$PATH"},
			expected: []string{"PATH=/tools" + sep + "/bin"},
		},
		{
			name:     "unknown reference expands to empty",
			sysEnv:   nil,
			unitEnv:  map[string]string{"FOO": "a${MISSING}b"},
			expected: []string{"FOO=ab"},
		},
		{
			name:     "malformed system entries are ignored",
			sysEnv:   []string{"NOEQUALS", "A=1"},
			expected: []string{"A=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.unitEnv)
			sort.Strings(got)
			sort.Strings(tt.expected)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLookPath_NoPath(t *testing.T) {
	_, err := lookPath("sh", []string{"HOME=/root"})
	assert.Error(t, err)
}
