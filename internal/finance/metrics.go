package finance

import (
	"math"

	"github.com/alexanderramin/tally/internal/domain"
)

type MetricsInput struct {
	Terms            domain.ProjectCommercialTerms
	TotalMinutesDone int
	// FixedCosts is the sum of cost entries that are neither platform fees nor tax.
	FixedCosts float64
}

// Metrics are the profitability figures of one project. Net and RealHourly
// may be negative; a deficit is reported as is.
type Metrics struct {
	Gross             float64  `json:"gross"`
	Net               float64  `json:"net"`
	TotalHours        float64  `json:"total_hours"`
	NominalHourly     *float64 `json:"nominal_hourly"`
	RealHourly        *float64 `json:"real_hourly"`
	PlatformFeeAmount float64  `json:"platform_fee_amount"`
	TaxAmount         float64  `json:"tax_amount"`
	DirectCost        float64  `json:"direct_cost"`
}

// ComputeMetrics derives income and hourly rates from contracted terms and
// logged minutes. Fee and tax are both taken on gross, not compounded.
func ComputeMetrics(input MetricsInput) Metrics {
	gross := input.Terms.ExpectedFee
	feeAmount := gross * input.Terms.PlatformFeeRate
	taxAmount := gross * input.Terms.TaxRate
	directCost := input.FixedCosts + feeAmount + taxAmount
	net := gross - directCost
	totalHours := float64(input.TotalMinutesDone) / 60

	m := Metrics{
		Gross:             gross,
		Net:               net,
		TotalHours:        totalHours,
		PlatformFeeAmount: feeAmount,
		TaxAmount:         taxAmount,
		DirectCost:        directCost,
	}

	if h := input.Terms.ExpectedHours; h != nil && *h > 0 {
		m.NominalHourly = finiteOrNil(gross / *h)
	}
	if totalHours > 0 {
		m.RealHourly = finiteOrNil(net / totalHours)
	}
	return m
}

// FixedCosts sums the cost entries that count as fixed costs. Platform fee
// and tax entries are excluded because ComputeMetrics derives them from rates.
func FixedCosts(costs []*domain.CostEntry) float64 {
	var sum float64
	for _, c := range costs {
		if c.CostType == domain.CostPlatformFee || c.CostType == domain.CostTax {
			continue
		}
		sum += c.Amount
	}
	return sum
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
