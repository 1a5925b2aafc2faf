package cropyield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHectaresToAcres(t *testing.T) {
	assert.Equal(t, 0.0, HectaresToAcres(0))
	assert.InDelta(t, 24.7, HectaresToAcres(10), 1e-9)
	assert.InDelta(t, 2.47, HectaresToAcres(1), 1e-12)
}

func TestSacks(t *testing.T) {
	got, err := Sacks(1000, 50)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)

	got, err = Sacks(0, 75)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = Sacks(1000, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestSacksTimesSizeRecoversTotal(t *testing.T) {
	for _, size := range []float64{50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100} {
		for _, total := range []float64{0, 1, 999.5, 50000, 123456.789} {
			sacks, err := Sacks(total, size)
			require.NoError(t, err)
			assert.InDelta(t, total, sacks*size, 1e-6, "total=%v size=%v", total, size)
		}
	}
}

func TestDeriveMetrics(t *testing.T) {
	m, err := DeriveMetrics(10, 5000, 20, 50)
	require.NoError(t, err)
	assert.Equal(t, Metrics{TotalYieldKg: 50000, TotalSacks: 1000, TotalRevenue: 1000000}, m)

	m, err = DeriveMetrics(0, 5000, 20, 50)
	require.NoError(t, err)
	assert.Equal(t, Metrics{}, m)

	_, err = DeriveMetrics(10, 5000, 20, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestSackSizeOnlyChangesSackCount(t *testing.T) {
	sizes := DefaultConfig().Form.SackSizes()
	require.NotEmpty(t, sizes)

	base, err := DeriveMetrics(12.5, 4200, 23.75, float64(sizes[0]))
	require.NoError(t, err)
	for _, size := range sizes {
		m, err := DeriveMetrics(12.5, 4200, 23.75, float64(size))
		require.NoError(t, err)
		assert.Equal(t, base.TotalYieldKg, m.TotalYieldKg, "size=%d", size)
		assert.Equal(t, base.TotalRevenue, m.TotalRevenue, "size=%d", size)
		assert.InDelta(t, m.TotalYieldKg, m.TotalSacks*float64(size), 1e-6, "size=%d", size)
	}
}
