package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ONESOURCE_TEST_DIR", "/tmp/onesource")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"absolute untouched", "/var/lib/crm.db", "/var/lib/crm.db"},
		{"tilde only", "~", home},
		{"tilde prefix", "~/data/crm.db", filepath.Join(home, "data", "crm.db")},
		{"env var", "$ONESOURCE_TEST_DIR/crm.db", "/tmp/onesource/crm.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, "/opt/crm.db", DatabasePath("/opt/crm.db"))

	got := DatabasePath("")
	assert.True(t, filepath.IsAbs(got))
	assert.True(t, strings.HasSuffix(got, filepath.Join(dataDir, "crm.db")))
}

func TestViewsPath(t *testing.T) {
	assert.Equal(t, "/opt/views", ViewsPath("/opt/views"))
	assert.Equal(t, "views", filepath.Base(ViewsPath("")))
}
