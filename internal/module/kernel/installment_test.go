package kernel

import (
	"testing"

	"github.com/storelink/paygate/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installmentConfig() config.InstallmentConfig {
	return config.InstallmentConfig{
		MaxInstallments:  6,
		InterestFree:     3,
		InterestRateBps:  200,
		MinAmountPerPart: 0,
	}
}

func TestResolveInstallments(t *testing.T) {
	svc := NewInstallmentService()

	t.Run("interest free window keeps base amount", func(t *testing.T) {
		options := svc.ResolveInstallments("visa", 10000, installmentConfig())
		require.Len(t, options, 6)
		for _, option := range options[:3] {
			assert.Equal(t, int64(10000), option.Total)
		}
	})

	t.Run("interest accrues per installment past the window", func(t *testing.T) {
		options := svc.ResolveInstallments("visa", 10000, installmentConfig())
		require.Len(t, options, 6)
		// 200 bps on the base amount per installment past the third.
		assert.Equal(t, int64(10200), options[3].Total)
		assert.Equal(t, int64(10400), options[4].Total)
		assert.Equal(t, int64(10600), options[5].Total)
	})

	t.Run("brand rate overrides the default", func(t *testing.T) {
		cfg := installmentConfig()
		cfg.BrandRateBps = map[string]int{"elo": 400}
		options := svc.ResolveInstallments("elo", 10000, cfg)
		require.Len(t, options, 6)
		assert.Equal(t, int64(10400), options[3].Total)
	})

	t.Run("options under the minimum per part are dropped", func(t *testing.T) {
		cfg := installmentConfig()
		cfg.MinAmountPerPart = 3000
		options := svc.ResolveInstallments("visa", 10000, cfg)
		times := make([]int, 0, len(options))
		for _, option := range options {
			times = append(times, option.Times)
		}
		// 4+ parts fall under 3000 per part; a single part always stays.
		assert.Equal(t, []int{1, 2, 3}, times)
	})

	t.Run("ascending by times", func(t *testing.T) {
		options := svc.ResolveInstallments("visa", 10000, installmentConfig())
		for i := 1; i < len(options); i++ {
			assert.Less(t, options[i-1].Times, options[i].Times)
		}
	})

	t.Run("non-positive amount yields no options", func(t *testing.T) {
		assert.Empty(t, svc.ResolveInstallments("visa", 0, installmentConfig()))
	})
}

func TestResolveTotal(t *testing.T) {
	svc := NewInstallmentService()

	total, err := svc.ResolveTotal("visa", 10000, 4, installmentConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(10200), total)

	_, err = svc.ResolveTotal("visa", 10000, 7, installmentConfig())
	assert.Error(t, err)

	cfg := installmentConfig()
	cfg.MinAmountPerPart = 3000
	_, err = svc.ResolveTotal("visa", 10000, 6, cfg)
	assert.Error(t, err)
}

func TestInstallmentPerPart(t *testing.T) {
	assert.Equal(t, int64(3400), Installment{Times: 3, Total: 10200}.PerPart())
	assert.Equal(t, int64(0), Installment{Times: 0, Total: 10200}.PerPart())
}
