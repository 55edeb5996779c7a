package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/edunexus-dev/cu-admissions-api/internal/dto"
	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
)

const maxApplicationSequence = 9999

// ApplicationCounterStore issues sequence values per admission cycle.
type ApplicationCounterStore interface {
	Next(ctx context.Context, cycle string) (int64, error)
	Current(ctx context.Context, cycle string) (int64, error)
}

// ApplicationNumberService formats, validates and allocates application
// numbers. A number is the configured prefix followed by a four digit
// sequence, e.g. 0170042.
type ApplicationNumberService struct {
	counters ApplicationCounterStore
	prefix   string
	cycle    string
	logger   *zap.Logger
}

// NewApplicationNumberService constructs the service.
func NewApplicationNumberService(counters ApplicationCounterStore, prefix, cycle string, logger *zap.Logger) *ApplicationNumberService {
	if prefix == "" {
		prefix = "017"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationNumberService{counters: counters, prefix: prefix, cycle: cycle, logger: logger}
}

// Format renders a sequence value as an application number.
func (s *ApplicationNumberService) Format(sequence int64) string {
	return fmt.Sprintf("%s%04d", s.prefix, sequence)
}

// Parse extracts the sequence value from an application number.
func (s *ApplicationNumberService) Parse(number string) (int64, error) {
	if !strings.HasPrefix(number, s.prefix) {
		return 0, fmt.Errorf("application number %q lacks prefix %s", number, s.prefix)
	}
	digits := number[len(s.prefix):]
	if len(digits) != 4 {
		return 0, fmt.Errorf("application number %q has a malformed sequence", number)
	}
	sequence, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("application number %q has a malformed sequence", number)
	}
	if sequence < 1 || sequence > maxApplicationSequence {
		return 0, fmt.Errorf("application number %q is out of range", number)
	}
	return sequence, nil
}

// Validate reports whether a number is well formed.
func (s *ApplicationNumberService) Validate(number string) bool {
	_, err := s.Parse(number)
	return err == nil
}

// Allocate issues the next application number for the configured cycle.
// The sequence space is finite; exhaustion is an error, never a wrap.
func (s *ApplicationNumberService) Allocate(ctx context.Context) (string, error) {
	sequence, err := s.counters.Next(ctx, s.cycle)
	if err != nil {
		return "", appErrors.ErrDatabaseOperation.Wrap(err)
	}
	if sequence > maxApplicationSequence {
		s.logger.Error("application number space exhausted",
			zap.String("cycle", s.cycle),
			zap.Int64("sequence", sequence))
		return "", appErrors.ErrNumbersExhausted
	}
	return s.Format(sequence), nil
}

// Stats summarizes counter usage for the configured cycle.
func (s *ApplicationNumberService) Stats(ctx context.Context) (*dto.ApplicationNumberStats, error) {
	current, err := s.counters.Current(ctx, s.cycle)
	if err != nil {
		return nil, appErrors.ErrDatabaseOperation.Wrap(err)
	}
	stats := &dto.ApplicationNumberStats{
		TotalIssued: current,
		Remaining:   maxApplicationSequence - current,
	}
	if stats.Remaining < 0 {
		stats.Remaining = 0
	}
	if current > 0 {
		last := s.Format(min64(current, maxApplicationSequence))
		stats.LastIssued = &last
	}
	if current < maxApplicationSequence {
		next := s.Format(current + 1)
		stats.NextAvailable = &next
	}
	return stats, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
