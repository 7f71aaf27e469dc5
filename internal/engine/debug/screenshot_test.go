package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "explosion")

	// 1x2 image: bottom row red, top row blue (GL order: bottom first)
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "explosion_"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b, "top row of the PNG should be blue")

	r, _, b, _ = img.At(0, 1).RGBA()
	assert.NotZero(t, r, "bottom row of the PNG should be red")
	assert.Zero(t, b)
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")

	_, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)

	_, err = sc.CaptureFromPixels(nil, 0, 0)
	assert.Error(t, err)
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("out", "shot")
	sc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 8e6, time.UTC) }

	assert.Equal(t, filepath.Join("out", "shot_2026-03-04_05-06-07.008.png"), sc.GenerateFilename())
	assert.Equal(t, "out", sc.OutputDir())
}
