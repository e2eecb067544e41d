package quota

import (
	"context"
	"testing"
	"time"

	"press-lens/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitAndReserveDailyLimit(t *testing.T) {
	l := NewAnalysisQuotaLimiter(config.AnalysisQuotaConfig{RequestsPerDay: 2})

	for i := 0; i < 2; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, l.Used())
}

func TestWaitAndReserveResetsOnNewDay(t *testing.T) {
	day := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	l := NewAnalysisQuotaLimiter(config.AnalysisQuotaConfig{RequestsPerDay: 1})
	l.now = func() time.Time { return day }

	ok, _ := l.WaitAndReserve(context.Background())
	assert.True(t, ok)
	ok, _ = l.WaitAndReserve(context.Background())
	assert.False(t, ok)

	day = day.Add(2 * time.Minute)
	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWaitAndReserveHonorsContext(t *testing.T) {
	l := NewAnalysisQuotaLimiter(config.AnalysisQuotaConfig{RequestsPerMinute: 1})

	ok, err := l.WaitAndReserve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err = l.WaitAndReserve(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	// 취소된 대기는 일일 사용량에 남지 않는다.
	assert.Equal(t, 1, l.Used())
}

func TestUnlimited(t *testing.T) {
	l := NewAnalysisQuotaLimiter(config.AnalysisQuotaConfig{})
	for i := 0; i < 100; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	}
}
