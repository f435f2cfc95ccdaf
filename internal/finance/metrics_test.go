package finance

import (
	"math"
	"testing"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terms(fee float64, hours *float64) domain.ProjectCommercialTerms {
	return domain.ProjectCommercialTerms{
		ExpectedFee:     fee,
		ExpectedHours:   hours,
		PlatformFeeRate: 0.2,
		TaxRate:         0.033,
	}
}

func TestComputeMetrics_Typical(t *testing.T) {
	m := ComputeMetrics(MetricsInput{
		Terms:            terms(3_000_000, domain.Ptr(40.0)),
		TotalMinutesDone: 3000, // 50h
		FixedCosts:       100_000,
	})

	assert.Equal(t, 3_000_000.0, m.Gross)
	assert.InDelta(t, 600_000, m.PlatformFeeAmount, 1e-6)
	assert.InDelta(t, 99_000, m.TaxAmount, 1e-6)
	assert.InDelta(t, 799_000, m.DirectCost, 1e-6)
	assert.InDelta(t, 2_201_000, m.Net, 1e-6)
	assert.InDelta(t, 50, m.TotalHours, 1e-9)
	require.NotNil(t, m.NominalHourly)
	assert.InDelta(t, 75_000, *m.NominalHourly, 1e-6)
	require.NotNil(t, m.RealHourly)
	assert.InDelta(t, 44_020, *m.RealHourly, 1e-6)
}

func TestComputeMetrics_TaxIsOnGrossNotAfterFee(t *testing.T) {
	m := ComputeMetrics(MetricsInput{
		Terms: domain.ProjectCommercialTerms{ExpectedFee: 1000, PlatformFeeRate: 0.5, TaxRate: 0.1},
	})
	assert.InDelta(t, 100, m.TaxAmount, 1e-9)
	assert.InDelta(t, 400, m.Net, 1e-9)
}

func TestComputeMetrics_NominalNilWithoutExpectedHours(t *testing.T) {
	for _, hours := range []*float64{nil, domain.Ptr(0.0), domain.Ptr(-5.0)} {
		m := ComputeMetrics(MetricsInput{Terms: terms(1000, hours), TotalMinutesDone: 60})
		assert.Nil(t, m.NominalHourly)
	}
}

func TestComputeMetrics_NominalNilOnOverflow(t *testing.T) {
	m := ComputeMetrics(MetricsInput{Terms: terms(math.MaxFloat64, domain.Ptr(1e-300))})
	assert.Nil(t, m.NominalHourly)
}

func TestComputeMetrics_RealNilWithoutMinutes(t *testing.T) {
	m := ComputeMetrics(MetricsInput{Terms: terms(1000, domain.Ptr(10.0)), TotalMinutesDone: 0})
	assert.Nil(t, m.RealHourly)
	assert.Equal(t, 0.0, m.TotalHours)
}

func TestComputeMetrics_DeficitFlowsThrough(t *testing.T) {
	m := ComputeMetrics(MetricsInput{
		Terms:            terms(1000, domain.Ptr(10.0)),
		TotalMinutesDone: 90,
		FixedCosts:       5000,
	})

	assert.Less(t, m.Net, 0.0)
	require.NotNil(t, m.RealHourly)
	assert.Less(t, *m.RealHourly, 0.0)
	assert.InDelta(t, m.Net/m.TotalHours, *m.RealHourly, 1e-9)
}

func TestComputeMetrics_TotalHoursNotRounded(t *testing.T) {
	m := ComputeMetrics(MetricsInput{Terms: terms(0, nil), TotalMinutesDone: 100})
	assert.InDelta(t, 100.0/60.0, m.TotalHours, 1e-12)
}

func TestComputeMetrics_NonFiniteNeverReturned(t *testing.T) {
	m := ComputeMetrics(MetricsInput{
		Terms:            domain.ProjectCommercialTerms{ExpectedFee: math.Inf(1), ExpectedHours: domain.Ptr(10.0)},
		TotalMinutesDone: 60,
	})
	assert.Nil(t, m.NominalHourly)
	assert.Nil(t, m.RealHourly)
}

func TestFixedCosts_ExcludesFeeAndTax(t *testing.T) {
	costs := []*domain.CostEntry{
		{Amount: 12_000, CostType: domain.CostFixed},
		{Amount: 50_000, CostType: domain.CostPlatformFee},
		{Amount: 3_300, CostType: domain.CostTax},
		{Amount: 8_000, CostType: domain.CostFixed},
	}
	assert.InDelta(t, 20_000, FixedCosts(costs), 1e-9)
	assert.Equal(t, 0.0, FixedCosts(nil))
}
