package auth_test

import (
	"testing"
	"time"

	auth "github.com/kappa1111/modooDiary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWithinThresholdPeriod(t *testing.T) {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	t.Run("recent time is within the window", func(t *testing.T) {
		within, err := auth.IsWithinThresholdPeriod(base, base.Add(-time.Hour), "24h")
		require.NoError(t, err)
		assert.True(t, within)
	})

	t.Run("stale time is outside the window", func(t *testing.T) {
		within, err := auth.IsWithinThresholdPeriod(base, base.Add(-48*time.Hour), "24h")
		require.NoError(t, err)
		assert.False(t, within)
	})

	t.Run("window moves with the reference clock", func(t *testing.T) {
		attempt := base.Add(-time.Hour)

		within, err := auth.IsWithinThresholdPeriod(base, attempt, "24h")
		require.NoError(t, err)
		assert.True(t, within)

		within, err = auth.IsWithinThresholdPeriod(base.Add(48*time.Hour), attempt, "24h")
		require.NoError(t, err)
		assert.False(t, within)
	})

	t.Run("bad pattern errors", func(t *testing.T) {
		_, err := auth.IsWithinThresholdPeriod(base, base, "one day")
		assert.Error(t, err)
	})
}

func TestIsOutsideThresholdPeriod(t *testing.T) {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	outside, err := auth.IsOutsideThresholdPeriod(base, base.Add(-48*time.Hour), "24h")
	require.NoError(t, err)
	assert.True(t, outside)

	outside, err = auth.IsOutsideThresholdPeriod(base, base.Add(-time.Hour), "24h")
	require.NoError(t, err)
	assert.False(t, outside)
}
