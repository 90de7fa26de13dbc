package main

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/spotlight/internal/engine/footprint"
)

// screenshotDir is where F12 captures are written.
const screenshotDir = "screenshots"

// screenshotName returns a timestamped path for a capture in dir.
func screenshotName(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("spotview_%s.png", t.Format("2006-01-02_15-04-05")))
}

// flipRows copies bottom-up RGBA rows into a top-down image.
func flipRows(pixels []byte, width, height int) (*image.NRGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// capture reads the back buffer and saves it.
func (v *viewer) capture() (string, error) {
	w, h := v.win.Size()
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	img, err := flipRows(pixels, w, h)
	if err != nil {
		return "", err
	}
	path := screenshotName(screenshotDir, time.Now())
	if err := footprint.Save(path, img); err != nil {
		return "", err
	}
	return path, nil
}
