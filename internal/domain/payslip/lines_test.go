package payslip

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paghe/internal/domain/contracts"
)

// testSnapshot returns a resolved contract with an exact hourly rate of 12:
// 2,080 monthly over 40 weekly hours (40 × 52 / 12 monthly hours).
func testSnapshot() contracts.Snapshot {
	return contracts.Snapshot{
		EmployeeID:         "emp-1",
		FirstName:          "Anna",
		LastName:           "Bianchi",
		HireDate:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ContractType:       "full_time",
		WeeklyHours:        decimal.NewFromInt(40),
		RegionalSurtaxPct:  dec("1.5"),
		MunicipalSurtaxPct: dec("0.8"),
		EmploymentCredit:   true,
		Agreement: contracts.Agreement{
			ID:                 "ccnl-1",
			Name:               "CCNL Commercio",
			OvertimeWeekdayPct: decimal.NewFromInt(15),
			OvertimeHolidayPct: decimal.NewFromInt(30),
			OvertimeNightPct:   decimal.NewFromInt(50),
		},
		Level: contracts.Level{
			ID:             "lvl-4",
			Code:           "4",
			MonthlyBasePay: decimal.NewFromInt(2080),
			WeeklyHours:    decimal.NewFromInt(40),
		},
	}
}

func jan2025() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestBuildEarningsOrdinary(t *testing.T) {
	snap := testSnapshot()
	hours := Hours{Ordinary: decimal.NewFromInt(160)}

	earned, err := buildEarnings(snap, hours, jan2025())
	require.NoError(t, err)
	require.Len(t, earned.lines, 1)

	line := earned.lines[0]
	assert.Equal(t, "Retribuzione ordinaria", line.Description)
	assert.Equal(t, LineKindEarning, line.Kind)
	assert.True(t, line.Total.Equal(dec("1920")), "got %s", line.Total)
	assert.True(t, line.UnitAmount.Decimal.Equal(dec("12")))
	assert.True(t, line.TaxableFiscal)
	assert.True(t, line.TaxableContribution)
	assert.True(t, earned.severanceBase.Equal(dec("1920")))
}

func TestBuildEarningsOvertime(t *testing.T) {
	snap := testSnapshot()
	hours := Hours{
		Ordinary: decimal.NewFromInt(160),
		Overtime: map[string]decimal.Decimal{
			OvertimeWeekday: decimal.NewFromInt(10),
			OvertimeNight:   decimal.NewFromInt(4),
		},
	}

	earned, err := buildEarnings(snap, hours, jan2025())
	require.NoError(t, err)
	require.Len(t, earned.lines, 3)

	weekday := earned.lines[1]
	assert.Equal(t, "Straordinario feriale (+15%)", weekday.Description)
	assert.True(t, weekday.Total.Equal(dec("138")), "got %s", weekday.Total)
	assert.True(t, weekday.UnitAmount.Decimal.Equal(dec("13.8")))

	night := earned.lines[2]
	assert.Equal(t, "Straordinario notturno (+50%)", night.Description)
	assert.True(t, night.Total.Equal(dec("72")), "got %s", night.Total)

	// 1920 + 138 + 72
	assert.True(t, earned.severanceBase.Equal(dec("2130")))
}

func TestBuildEarningsSkipsZeroOvertime(t *testing.T) {
	snap := testSnapshot()
	hours := Hours{
		Ordinary: decimal.NewFromInt(160),
		Overtime: map[string]decimal.Decimal{OvertimeHoliday: decimal.Zero},
	}

	earned, err := buildEarnings(snap, hours, jan2025())
	require.NoError(t, err)
	assert.Len(t, earned.lines, 1)
}

func TestBuildEarningsElements(t *testing.T) {
	snap := testSnapshot()
	snap.Agreement.Elements = []contracts.PayElement{
		{Code: "CONT", Name: "Contingenza", CalcKind: contracts.CalcKindFixed, Value: decimal.NewFromInt(150), Nature: contracts.NatureTaxable, IncludeInSeverance: true, Active: true},
		{Code: "IND", Name: "Indennità di funzione", CalcKind: contracts.CalcKindPercentBase, Value: decimal.NewFromInt(10), Nature: contracts.NatureTaxable, Active: true},
		{Code: "MENSA", Name: "Indennità mensa", CalcKind: contracts.CalcKindFixed, Value: decimal.NewFromInt(80), Nature: contracts.NatureExempt, Active: true},
		{Code: "OLD", Name: "Elemento disattivato", CalcKind: contracts.CalcKindFixed, Value: decimal.NewFromInt(999), Nature: contracts.NatureTaxable, Active: false},
	}
	hours := Hours{Ordinary: decimal.NewFromInt(160)}

	earned, err := buildEarnings(snap, hours, jan2025())
	require.NoError(t, err)
	require.Len(t, earned.lines, 4)

	contingenza := earned.lines[1]
	assert.True(t, contingenza.Total.Equal(dec("150")))
	assert.True(t, contingenza.TaxableFiscal)
	assert.True(t, contingenza.TaxableContribution)

	// 10% of the 1,920 ordinary base.
	indennita := earned.lines[2]
	assert.True(t, indennita.Total.Equal(dec("192")), "got %s", indennita.Total)

	mensa := earned.lines[3]
	assert.False(t, mensa.TaxableFiscal)
	assert.False(t, mensa.TaxableContribution)

	// Only the ordinary pay and the contingenza feed severance.
	assert.True(t, earned.severanceBase.Equal(dec("2070")), "got %s", earned.severanceBase)
}

func TestBuildEarningsFixedElementWithZeroHours(t *testing.T) {
	snap := testSnapshot()
	snap.Agreement.Elements = []contracts.PayElement{
		{Code: "CONT", Name: "Contingenza", CalcKind: contracts.CalcKindFixed, Value: decimal.NewFromInt(150), Nature: contracts.NatureTaxable, Active: true},
	}

	earned, err := buildEarnings(snap, Hours{Ordinary: decimal.Zero}, jan2025())
	require.NoError(t, err)
	require.Len(t, earned.lines, 2)
	assert.True(t, earned.lines[0].Total.IsZero())
	assert.True(t, earned.lines[1].Total.Equal(dec("150")))
}

func TestNatureFlags(t *testing.T) {
	tests := []struct {
		nature       string
		fiscal       bool
		contribution bool
	}{
		{contracts.NatureTaxable, true, true},
		{contracts.NatureExempt, false, false},
		{contracts.NatureFiscalOnly, true, false},
		{contracts.NatureContributionOnly, false, true},
	}

	for _, tt := range tests {
		fiscal, contribution := natureFlags(tt.nature)
		assert.Equal(t, tt.fiscal, fiscal, tt.nature)
		assert.Equal(t, tt.contribution, contribution, tt.nature)
	}
}

func TestAggregateBasesHonorFlags(t *testing.T) {
	lines := []LineItem{
		{Kind: LineKindEarning, Total: dec("1000"), TaxableFiscal: true, TaxableContribution: true},
		{Kind: LineKindEarning, Total: dec("100"), TaxableFiscal: true, TaxableContribution: false},
		{Kind: LineKindEarning, Total: dec("50"), TaxableFiscal: false, TaxableContribution: true},
		{Kind: LineKindEarning, Total: dec("80")},
		{Kind: LineKindWithholding, Total: dec("500"), TaxableFiscal: true, TaxableContribution: true},
	}

	fiscal, contribution := aggregateBases(lines)
	assert.True(t, fiscal.Equal(dec("1100")), "got %s", fiscal)
	assert.True(t, contribution.Equal(dec("1050")), "got %s", contribution)
}
