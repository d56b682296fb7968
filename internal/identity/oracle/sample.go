package oracle

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"rollcall/internal/attendance/models"
)

// Image size bounds enforced by the face service; checked locally so that
// obviously unusable samples never cost a network call.
const (
	MinImageSide = 150
	MaxImageSide = 4096
)

// CheckSample decodes only the image header and validates format and size.
func CheckSample(sample []byte) (format string, err error) {
	if len(sample) == 0 {
		return "", fmt.Errorf("%w: empty sample", models.ErrInvalidSample)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(sample))
	if err != nil {
		return "", fmt.Errorf("%w: not a decodable image: %v", models.ErrInvalidSample, err)
	}
	if cfg.Width < MinImageSide || cfg.Height < MinImageSide {
		return "", fmt.Errorf("%w: image too small (%dx%d), minimum %dx%d",
			models.ErrInvalidSample, cfg.Width, cfg.Height, MinImageSide, MinImageSide)
	}
	if cfg.Width > MaxImageSide || cfg.Height > MaxImageSide {
		return "", fmt.Errorf("%w: image too large (%dx%d), maximum %dx%d",
			models.ErrInvalidSample, cfg.Width, cfg.Height, MaxImageSide, MaxImageSide)
	}
	return format, nil
}

func mimeType(format string) string {
	switch format {
	case "jpeg", "png", "gif", "webp":
		return "image/" + format
	default:
		return "application/octet-stream"
	}
}
