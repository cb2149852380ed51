package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got := defaultConfigPath()
	assert.Equal(t, filepath.Join(home, ".gosh.yml"), got)
	assert.True(t, filepath.IsAbs(got), "config lookup must not depend on the working directory")
}
