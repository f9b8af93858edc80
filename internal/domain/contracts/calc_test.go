package contracts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() Snapshot {
	return Snapshot{
		EmployeeID:  "emp-1",
		HireDate:    time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		WeeklyHours: decimal.NewFromInt(40),
		Superminimo: decimal.NewFromInt(100),
		Agreement: Agreement{
			ID:                    "ccnl-1",
			YearsPerSeniorityStep: 2,
			SeniorityStepAmount:   decimal.NewFromInt(25),
			MaxSenioritySteps:     10,
		},
		Level: Level{
			ID:             "lvl-1",
			MonthlyBasePay: decimal.NewFromInt(1800),
			WeeklyHours:    decimal.NewFromInt(40),
		},
	}
}

func TestValidate(t *testing.T) {
	snap := testSnapshot()
	require.NoError(t, snap.Validate())

	noLevel := snap
	noLevel.Level = Level{}
	assert.ErrorIs(t, noLevel.Validate(), ErrLevelNotSet)

	noAgreement := snap
	noAgreement.Agreement = Agreement{}
	assert.ErrorIs(t, noAgreement.Validate(), ErrAgreementNotSet)

	noHours := snap
	noHours.WeeklyHours = decimal.Zero
	assert.ErrorIs(t, noHours.Validate(), ErrZeroContractHours)
}

func TestSenioritySteps(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"before hire", time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC), 0},
		{"first year", time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
		{"after two years", time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC), 1},
		{"after five years", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, snap.SenioritySteps(tc.at))
		})
	}
}

func TestSenioritySteps_Capped(t *testing.T) {
	snap := testSnapshot()
	snap.Agreement.MaxSenioritySteps = 3
	at := time.Date(2045, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, snap.SenioritySteps(at))
}

func TestSenioritySteps_DisabledWithoutStepAmount(t *testing.T) {
	snap := testSnapshot()
	snap.Agreement.SeniorityStepAmount = decimal.Zero
	at := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, snap.SenioritySteps(at))
}

func TestHourlyRate(t *testing.T) {
	snap := testSnapshot()
	at := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

	// No steps matured yet: (1800 + 100) / (40*52/12)
	rate, err := snap.HourlyRate(at)
	require.NoError(t, err)

	monthlyHours := decimal.NewFromInt(40).Mul(decimal.NewFromInt(52)).Div(decimal.NewFromInt(12))
	want := decimal.NewFromInt(1900).Div(monthlyHours)
	assert.True(t, rate.Equal(want), "got %s want %s", rate, want)
}

func TestHourlyRate_IncludesSeniority(t *testing.T) {
	snap := testSnapshot()
	at := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	rate, err := snap.HourlyRate(at)
	require.NoError(t, err)

	// Two steps of 25 matured by 2025.
	monthly := snap.MonthlyPay(at)
	assert.True(t, monthly.Equal(decimal.NewFromInt(1950)), "got %s", monthly)
	assert.True(t, rate.Equal(monthly.Div(snap.MonthlyHours())))
}

func TestHourlyRate_ZeroHours(t *testing.T) {
	snap := testSnapshot()
	snap.WeeklyHours = decimal.Zero
	_, err := snap.HourlyRate(time.Now())
	assert.ErrorIs(t, err, ErrZeroContractHours)
}
