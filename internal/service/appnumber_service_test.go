package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
)

type fakeCounterStore struct {
	value int64
	err   error
}

func (f *fakeCounterStore) Next(ctx context.Context, cycle string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.value++
	return f.value, nil
}

func (f *fakeCounterStore) Current(ctx context.Context, cycle string) (int64, error) {
	return f.value, f.err
}

func TestApplicationNumberFormatParseRoundTrip(t *testing.T) {
	svc := NewApplicationNumberService(&fakeCounterStore{}, "017", "2025", nil)

	require.Equal(t, "0170001", svc.Format(1))
	require.Equal(t, "0179999", svc.Format(9999))

	sequence, err := svc.Parse("0170042")
	require.NoError(t, err)
	require.Equal(t, int64(42), sequence)

	require.True(t, svc.Validate("0170042"))
	require.False(t, svc.Validate("0180042"))
	require.False(t, svc.Validate("017004"))
	require.False(t, svc.Validate("01700420"))
	require.False(t, svc.Validate("017abcd"))
	require.False(t, svc.Validate("0170000"))
}

func TestApplicationNumberAllocateSequential(t *testing.T) {
	store := &fakeCounterStore{}
	svc := NewApplicationNumberService(store, "017", "2025", nil)

	first, err := svc.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0170001", first)

	second, err := svc.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0170002", second)
}

func TestApplicationNumberAllocateExhausted(t *testing.T) {
	store := &fakeCounterStore{value: maxApplicationSequence}
	svc := NewApplicationNumberService(store, "017", "2025", nil)

	_, err := svc.Allocate(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNumbersExhausted.Code, appErr.Code)
}

func TestApplicationNumberStats(t *testing.T) {
	store := &fakeCounterStore{value: 41}
	svc := NewApplicationNumberService(store, "017", "2025", nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(41), stats.TotalIssued)
	require.Equal(t, int64(maxApplicationSequence-41), stats.Remaining)
	require.NotNil(t, stats.LastIssued)
	require.Equal(t, "0170041", *stats.LastIssued)
	require.NotNil(t, stats.NextAvailable)
	require.Equal(t, "0170042", *stats.NextAvailable)
}

func TestApplicationNumberStatsUnused(t *testing.T) {
	svc := NewApplicationNumberService(&fakeCounterStore{}, "017", "2025", nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.TotalIssued)
	require.Nil(t, stats.LastIssued)
	require.Equal(t, "0170001", *stats.NextAvailable)
}
