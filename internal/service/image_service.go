package service

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"net/http"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
)

const (
	minJPEGQuality     = 10
	maxConvertAttempts = 10
)

// ConversionSettings bound the output of one document class.
type ConversionSettings struct {
	MaxSizeBytes int64
	Quality      int
}

// Per-class budgets. Identity images stay small, evidence scans get more
// head room.
var (
	identityImageSettings = ConversionSettings{MaxSizeBytes: 100 * 1024, Quality: 85}
	evidenceImageSettings = ConversionSettings{MaxSizeBytes: 250 * 1024, Quality: 80}
)

// SettingsForCode picks the conversion budget for a document code.
func SettingsForCode(code string) ConversionSettings {
	if code == "P" || code == "S" {
		return identityImageSettings
	}
	return evidenceImageSettings
}

// ImageService converts uploaded documents to bounded JPEGs.
type ImageService struct {
	logger *zap.Logger
}

// NewImageService constructs the converter.
func NewImageService(logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{logger: logger}
}

// Convert re-encodes data as a JPEG no larger than the settings allow.
// A JPEG already under budget passes through untouched. Quality drops
// iteratively, never below the floor; if the floor still exceeds the
// budget the smallest encoding wins.
func (s *ImageService) Convert(data []byte, settings ConversionSettings) ([]byte, error) {
	if len(data) == 0 {
		return nil, appErrors.ErrConversionFailed.Wrap(fmt.Errorf("empty file"))
	}
	if isJPEG(data) && int64(len(data)) <= settings.MaxSizeBytes {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, appErrors.ErrConversionFailed.Wrap(err)
	}

	quality := settings.Quality
	if quality <= 0 {
		quality = evidenceImageSettings.Quality
	}

	var best []byte
	for attempt := 0; attempt < maxConvertAttempts; attempt++ {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, appErrors.ErrConversionFailed.Wrap(err)
		}
		out := buf.Bytes()
		if best == nil || len(out) < len(best) {
			best = out
		}
		if int64(len(out)) <= settings.MaxSizeBytes {
			return out, nil
		}
		if quality <= minJPEGQuality {
			break
		}
		ratio := float64(settings.MaxSizeBytes) / float64(len(out))
		reduction := int((1 - ratio) * 20)
		if reduction < 5 {
			reduction = 5
		}
		quality -= reduction
		if quality < minJPEGQuality {
			quality = minJPEGQuality
		}
	}

	s.logger.Warn("image exceeds size budget at minimum quality",
		zap.Int("bytes", len(best)),
		zap.Int64("budget", settings.MaxSizeBytes))
	return best, nil
}

// DetectContentType sniffs the MIME type of an upload.
func DetectContentType(data []byte) string {
	return http.DetectContentType(data)
}

func isJPEG(data []byte) bool {
	return len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
}
