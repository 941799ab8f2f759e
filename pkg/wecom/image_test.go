package wecom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PNG 文件头魔数
var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestImageEncode(t *testing.T) {
	img := NewImage(pngMagic)

	b64, sum := img.Encode()
	assert.Equal(t, "iVBORw0KGgo=", b64)
	assert.Equal(t, "e9dd2797018cad79186e03e8c5aec8dc", sum)
	assert.Equal(t, len(pngMagic), img.Size())
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, pngMagic, 0644))

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, len(pngMagic), img.Size())

	b64, sum := img.Encode()
	assert.Equal(t, "iVBORw0KGgo=", b64)
	assert.Equal(t, "e9dd2797018cad79186e03e8c5aec8dc", sum)
}

func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "no-such-file.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
