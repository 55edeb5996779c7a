package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func noisyImage(t *testing.T, w, h int) image.Image {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageServiceSmallJPEGPassThrough(t *testing.T) {
	svc := NewImageService(nil)
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, noisyImage(t, 40, 40), &jpeg.Options{Quality: 80}))
	in := buf.Bytes()

	out, err := svc.Convert(in, identityImageSettings)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestImageServicePNGConvertedToJPEG(t *testing.T) {
	svc := NewImageService(nil)
	in := encodePNG(t, noisyImage(t, 200, 200))

	out, err := svc.Convert(in, evidenceImageSettings)
	require.NoError(t, err)
	require.True(t, isJPEG(out))
	require.LessOrEqual(t, int64(len(out)), evidenceImageSettings.MaxSizeBytes)
}

func TestImageServiceLargeInputShrinksUnderBudget(t *testing.T) {
	svc := NewImageService(nil)
	in := encodePNG(t, noisyImage(t, 600, 600))
	require.Greater(t, int64(len(in)), identityImageSettings.MaxSizeBytes)

	out, err := svc.Convert(in, identityImageSettings)
	require.NoError(t, err)
	require.True(t, isJPEG(out))
	require.Less(t, len(out), len(in))
}

func TestImageServiceRejectsNonImage(t *testing.T) {
	svc := NewImageService(nil)
	_, err := svc.Convert([]byte("definitely not an image"), evidenceImageSettings)
	require.Error(t, err)

	_, err = svc.Convert(nil, evidenceImageSettings)
	require.Error(t, err)
}

func TestSettingsForCode(t *testing.T) {
	require.Equal(t, identityImageSettings, SettingsForCode("P"))
	require.Equal(t, identityImageSettings, SettingsForCode("S"))
	require.Equal(t, evidenceImageSettings, SettingsForCode("M"))
	require.Equal(t, evidenceImageSettings, SettingsForCode("DOC"))
}
