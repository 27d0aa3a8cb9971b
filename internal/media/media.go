// Package media prepares product images for upload.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/nfnt/resize"
)

// DefaultMaxWidth is the width product images are scaled down to.
const DefaultMaxWidth = 1600

const jpegQuality = 85

// Downscale returns the image ready for upload. PNG and JPEG images wider
// than maxWidth are resized to maxWidth, keeping the aspect ratio, and
// re-encoded as JPEG. Anything else, including formats that cannot be
// decoded, is passed through unchanged. A maxWidth of 0 disables resizing.
func Downscale(r io.Reader, filename, contentType string, maxWidth uint) (api.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return api.Image{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	original := api.Image{Filename: filename, ContentType: contentType, Body: bytes.NewReader(data)}
	if maxWidth == 0 {
		return original, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || uint(cfg.Width) <= maxWidth {
		return original, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return original, nil
	}

	scaled := resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	var out bytes.Buffer
	if err := jpeg.Encode(&out, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return api.Image{}, fmt.Errorf("encoding %s: %w", filename, err)
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	return api.Image{Filename: name, ContentType: "image/jpeg", Body: &out}, nil
}
