package kernel

import (
	"sort"

	"github.com/storelink/paygate/internal/shared/config"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// Installment is one row of the installment table for a given amount: pay
// in Times parts for a Total in minor currency units.
type Installment struct {
	Times int   `json:"times"`
	Total int64 `json:"total"`
}

// PerPart returns the amount of a single part, rounded down.
func (i Installment) PerPart() int64 {
	if i.Times <= 0 {
		return 0
	}
	return i.Total / int64(i.Times)
}

// InstallmentService computes installment tables from per-method
// configuration. Interest is simple, charged per installment past the
// interest-free window, in basis points on the base amount.
type InstallmentService struct{}

// NewInstallmentService creates an installment service.
func NewInstallmentService() *InstallmentService {
	return &InstallmentService{}
}

// ResolveInstallments returns the valid installment options for the
// brand and amount, ascending by Times. Options whose per-part amount
// falls under the configured minimum are dropped.
func (s *InstallmentService) ResolveInstallments(brand string, amount int64, cfg config.InstallmentConfig) []Installment {
	if amount <= 0 || cfg.MaxInstallments <= 0 {
		return nil
	}
	rate := cfg.InterestRateBps
	if brandRate, ok := cfg.BrandRateBps[brand]; ok {
		rate = brandRate
	}

	options := make([]Installment, 0, cfg.MaxInstallments)
	for times := 1; times <= cfg.MaxInstallments; times++ {
		total := amount
		if times > cfg.InterestFree {
			interestParts := int64(times - cfg.InterestFree)
			total += amount * int64(rate) * interestParts / 10000
		}
		option := Installment{Times: times, Total: total}
		if cfg.MinAmountPerPart > 0 && times > 1 && option.PerPart() < cfg.MinAmountPerPart {
			continue
		}
		options = append(options, option)
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Times < options[j].Times })
	return options
}

// ResolveTotal recomputes the charged total for the requested
// installment count. A count with no row in the resolved table fails the
// whole payment construction.
func (s *InstallmentService) ResolveTotal(brand string, amount int64, times int, cfg config.InstallmentConfig) (int64, error) {
	for _, option := range s.ResolveInstallments(brand, amount, cfg) {
		if option.Times == times {
			return option.Total, nil
		}
	}
	return 0, sherrors.InvalidInstallment(times)
}
