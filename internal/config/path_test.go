package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("FOXY_TEST_DIR", "/var/lib/foxy")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/foxy/foxy.db", want: filepath.Join(home, "foxy", "foxy.db")},
		{in: "$FOXY_TEST_DIR/foxy.db", want: "/var/lib/foxy/foxy.db"},
		{in: "/tmp/foxy.db", want: "/tmp/foxy.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
