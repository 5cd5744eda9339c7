// Package output encodes rendered images to files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image encoding
type Format int

// The supported output encodings
const (
	None Format = iota
	PNG
	JPEG
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	}
	return "none"
}

// FormatFromExt returns the format for a filename extension, with or without the dot
func FormatFromExt(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return None, errors.New("missing file extension")
	}
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return None, fmt.Errorf("unsupported image extension %q", ext)
}

// Save writes the image to filename, choosing the encoder from the extension.
// Missing parent directories are created.
func Save(img image.Image, filename string) error {
	format, err := FormatFromExt(filepath.Ext(filename))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	bw := bufio.NewWriter(file)
	if err := Write(img, bw, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write encodes the image to w in the given format
func Write(img image.Image, w io.Writer, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, nil)
	}
	return fmt.Errorf("invalid output format %q", format)
}
