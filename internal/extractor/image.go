package extractor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Registers the GIF decoder.
	"image/jpeg"
	"image/png"

	"newsbrief/internal/domain"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Registers the WebP decoder.
)

const (
	jpegQuality = 90

	// Checked against the header before the pixel buffer is allocated.
	maxImagePixels = 50_000_000
)

// imageDataURI encodes the image as a data URI for the vision backend. Images
// larger than maxDimension on either side are scaled down first. Formats the
// decoders do not know are passed through untouched.
func imageDataURI(data []byte, mediaType string, maxDimension int) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return dataURI(mediaType, data), nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: decode image config: %w", domain.ErrUnreadableFile, err)
	}

	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxImagePixels {
		return "", fmt.Errorf("%w: image is %dx%d, over %d pixels",
			domain.ErrUnreadableFile, cfg.Width, cfg.Height, maxImagePixels)
	}

	if cfg.Width <= maxDimension && cfg.Height <= maxDimension {
		return dataURI(mediaType, data), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decode image: %w", domain.ErrUnreadableFile, err)
	}

	scaled := downscale(img, maxDimension)

	var buf bytes.Buffer
	if format == "jpeg" {
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality})
		mediaType = "image/jpeg"
	} else {
		err = png.Encode(&buf, scaled)
		mediaType = "image/png"
	}
	if err != nil {
		return "", fmt.Errorf("encode scaled image: %w", err)
	}

	return dataURI(mediaType, buf.Bytes()), nil
}

// downscale fits img into a maxDimension square keeping its aspect ratio.
func downscale(img image.Image, maxDimension int) image.Image {
	bounds := img.Bounds()
	scale := float64(maxDimension) / float64(max(bounds.Dx(), bounds.Dy()))

	width := max(1, int(float64(bounds.Dx())*scale))
	height := max(1, int(float64(bounds.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}

func dataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
