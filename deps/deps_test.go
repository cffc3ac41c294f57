package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBinary_Missing(t *testing.T) {
	err := CheckBinary("vidnotes-no-such-binary", "https://example.invalid")

	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, "vidnotes-no-such-binary", depErr.Name)
	assert.Contains(t, err.Error(), "https://example.invalid")
}

func TestCheckBinary_Found(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "fake-mpv")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	assert.NoError(t, CheckMpv(bin))
}
