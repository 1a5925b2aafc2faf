package cropyield

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadBackground(t *testing.T) {
	path := writeFile(t, "background.png", pngHeader)

	bg, err := LoadBackground(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", bg.MIMEType)
	assert.Equal(t, "background.png", bg.Name())

	uri := bg.DataURI()
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, decoded)
}

func TestLoadBackgroundFailures(t *testing.T) {
	cases := map[string]string{
		"missing": filepath.Join(t.TempDir(), "nope.jpg"),
		"empty":   writeFile(t, "empty.jpg", nil),
		"text":    writeFile(t, "notes.jpg", []byte("just some text")),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadBackground(path)
			require.ErrorIs(t, err, ErrAssetLoad)
			assert.Contains(t, err.Error(), path)
		})
	}
}
