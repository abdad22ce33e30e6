package images

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestSize_WideImageCappedAt450(t *testing.T) {
	s, err := Size(encodePNG(t, 900, 600))
	require.NoError(t, err)
	assert.Equal(t, 450, s.Width)
	assert.Equal(t, 300, s.Height)
	assert.Equal(t, "png", s.Format)
}

func TestSize_NarrowImageKeepsNativeSize(t *testing.T) {
	s, err := Size(encodePNG(t, 300, 600))
	require.NoError(t, err)
	assert.Equal(t, 300, s.Width)
	assert.Equal(t, 600, s.Height)
}

func TestSize_ExactlyAtCapUnchanged(t *testing.T) {
	s, err := Size(encodePNG(t, 450, 500))
	require.NoError(t, err)
	assert.Equal(t, 450, s.Width)
	assert.Equal(t, 500, s.Height)
}

func TestSize_AspectRatioRounding(t *testing.T) {
	// 1000x333 -> 450 wide, 450*333/1000 = 149.85 rounds to 150.
	s, err := Size(encodePNG(t, 1000, 333))
	require.NoError(t, err)
	assert.Equal(t, 450, s.Width)
	assert.Equal(t, 150, s.Height)
}

func TestSize_CorruptDataFails(t *testing.T) {
	_, err := Size([]byte("definitely not an image"))
	assert.Error(t, err)
}
