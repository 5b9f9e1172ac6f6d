// Package imaging downscales uploaded avatars before they are stored.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// ErrUnsupportedImage is returned when the upload is not a JPEG, PNG or GIF.
var ErrUnsupportedImage = errors.New("unsupported image format")

// FitAvatar shrinks the image at path in place so neither side exceeds
// maxDim, keeping the aspect ratio. Smaller images are left untouched.
func FitAvatar(path string, maxDim int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	original, format, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	w, h := original.Bounds().Dx(), original.Bounds().Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return nil
	}

	nw, nh := fit(w, h, maxDim)
	bitmap := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(bitmap, bitmap.Bounds(), original, original.Bounds(), draw.Over, nil)

	tmp := path + ".resized"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := encode(out, bitmap, format); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func fit(w, h, maxDim int) (int, int) {
	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case "png":
		return png.Encode(w, img)
	case "gif":
		return gif.Encode(w, img, nil)
	}
	return ErrUnsupportedImage
}
