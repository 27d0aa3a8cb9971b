package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownscaleWideImage(t *testing.T) {
	out, err := Downscale(bytes.NewReader(pngOf(t, 400, 200)), "wide.png", "image/png", 100)
	require.NoError(t, err)
	assert.Equal(t, "wide.jpg", out.Filename)
	assert.Equal(t, "image/jpeg", out.ContentType)

	cfg, format, err := image.DecodeConfig(out.Body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestDownscaleKeepsSmallImage(t *testing.T) {
	data := pngOf(t, 80, 40)
	out, err := Downscale(bytes.NewReader(data), "small.png", "image/png", 100)
	require.NoError(t, err)
	assert.Equal(t, "small.png", out.Filename)
	got, err := io.ReadAll(out.Body)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDownscalePassesThroughUnknown(t *testing.T) {
	out, err := Downscale(strings.NewReader("GIF89a..."), "anim.gif", "image/gif", 10)
	require.NoError(t, err)
	got, _ := io.ReadAll(out.Body)
	assert.Equal(t, "GIF89a...", string(got))
	assert.Equal(t, "image/gif", out.ContentType)
}

func TestDownscaleDisabled(t *testing.T) {
	out, err := Downscale(bytes.NewReader(pngOf(t, 400, 200)), "wide.png", "image/png", 0)
	require.NoError(t, err)
	assert.Equal(t, "wide.png", out.Filename)
}
