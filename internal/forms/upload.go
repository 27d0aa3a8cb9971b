package forms

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxQRImageSize is the largest accepted wallet QR image.
const MaxQRImageSize = 2 << 20

var (
	ErrNotImage      = &ValidationError{Field: "image", Message: "Please upload an image file"}
	ErrImageTooLarge = &ValidationError{Field: "image", Message: "Image file size should be less than 2MB"}
)

// CheckQRUpload rejects a wallet QR upload that is not an image or is
// larger than MaxQRImageSize. The declared content type and the sniffed
// content must both be images. The file is rewound before returning.
func CheckQRUpload(file multipart.File, header *multipart.FileHeader) error {
	if !strings.Contains(header.Header.Get("Content-Type"), "image") {
		return ErrNotImage
	}
	if header.Size > MaxQRImageSize {
		return ErrImageTooLarge
	}
	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("sniffing upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding upload: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return ErrNotImage
	}
	return nil
}
