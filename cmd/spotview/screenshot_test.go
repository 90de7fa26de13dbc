package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestScreenshotName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	got := screenshotName("shots", ts)
	want := filepath.Join("shots", "spotview_2024-03-09_14-05-07.png")
	if got != want {
		t.Errorf("screenshotName = %q, want %q", got, want)
	}
}

func TestFlipRows(t *testing.T) {
	// Two rows of one pixel each, bottom row first as GL returns them.
	pixels := []byte{
		1, 2, 3, 255,
		9, 8, 7, 255,
	}
	img, err := flipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("flipRows: %v", err)
	}
	if top := img.NRGBAAt(0, 0); top.R != 9 {
		t.Errorf("top row R = %d, want 9", top.R)
	}
	if bottom := img.NRGBAAt(0, 1); bottom.R != 1 {
		t.Errorf("bottom row R = %d, want 1", bottom.R)
	}
}

func TestFlipRowsSizeMismatch(t *testing.T) {
	if _, err := flipRows(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
