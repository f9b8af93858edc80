package payslip

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProgressiveTax(t *testing.T) {
	brackets := DefaultTaxConfig().Brackets

	tests := []struct {
		name string
		base string
		want string
	}{
		{"zero", "0", "0"},
		{"negative", "-100", "0"},
		{"inside first bracket", "10000", "2300"},
		{"first bracket boundary", "15000", "3450"},
		{"spans three brackets", "30000", "7400"},
		{"second bracket boundary", "28000", "6700"},
		{"top bracket", "60000", "18700"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progressiveTax(brackets, dec(tt.base))
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestIncrementalTaxFirstMonth(t *testing.T) {
	brackets := DefaultTaxConfig().Brackets

	tax, clamped := incrementalTax(brackets, nil, dec("2000"))
	require.False(t, clamped)
	assert.True(t, tax.Equal(dec("460")), "got %s", tax)
}

func TestIncrementalTaxBracketCrossing(t *testing.T) {
	brackets := DefaultTaxConfig().Brackets

	// Seven confirmed months at 2,000 each, all inside the 23% bracket.
	var priors []PriorPeriod
	for month := 1; month <= 7; month++ {
		priors = append(priors, PriorPeriod{Month: month, TaxableNet: dec("2000"), IncomeTax: dec("460")})
	}

	// Month 8 pushes the cumulative base to 16,000: the last 1,000 falls
	// into the 25% bracket, so the increment exceeds a flat month's 460.
	tax, clamped := incrementalTax(brackets, priors, dec("2000"))
	require.False(t, clamped)
	assert.True(t, tax.Equal(dec("480")), "got %s", tax)
}

func TestIncrementalTaxClampsNegative(t *testing.T) {
	brackets := DefaultTaxConfig().Brackets

	// Prior withholding above what the cumulative base justifies.
	priors := []PriorPeriod{{Month: 1, TaxableNet: dec("2000"), IncomeTax: dec("900")}}

	tax, clamped := incrementalTax(brackets, priors, dec("100"))
	assert.True(t, clamped)
	assert.True(t, tax.IsZero(), "got %s", tax)
}

func TestIncrementalTaxCumulativeConsistency(t *testing.T) {
	brackets := DefaultTaxConfig().Brackets

	// Uneven months, including a zero one. Absent clamping, the sum of the
	// monthly increments must equal the tax on the whole yearly base.
	nets := []string{"1500", "3200", "0", "2750.40", "4100.15", "900", "2600", "1999.99", "5000", "1234.56", "3000", "2800"}

	var priors []PriorPeriod
	total := decimal.Zero
	withheld := decimal.Zero
	for month, net := range nets {
		tax, clamped := incrementalTax(brackets, priors, dec(net))
		require.False(t, clamped, "month %d", month+1)
		priors = append(priors, PriorPeriod{Month: month + 1, TaxableNet: dec(net), IncomeTax: tax})
		total = total.Add(dec(net))
		withheld = withheld.Add(tax)
	}

	assert.True(t, withheld.Equal(progressiveTax(brackets, total)),
		"withheld %s, full-year tax %s", withheld, progressiveTax(brackets, total))
}

func TestIncrementalTaxCumulativeConsistencyRandomSequences(t *testing.T) {
	brackets := DefaultTaxConfig().Brackets
	rng := rand.New(rand.NewSource(20250831))

	// Monthly nets up to 6,000.00 in whole cents, so a year can land anywhere
	// from the first bracket to the top one and cross boundaries mid-month.
	for run := 0; run < 100; run++ {
		var priors []PriorPeriod
		total := decimal.Zero
		withheld := decimal.Zero
		for month := 1; month <= 12; month++ {
			net := decimal.New(int64(rng.Intn(600001)), -2)
			tax, clamped := incrementalTax(brackets, priors, net)
			require.False(t, clamped, "run %d month %d net %s", run, month, net)
			require.False(t, tax.IsNegative(), "run %d month %d", run, month)
			priors = append(priors, PriorPeriod{Month: month, TaxableNet: net, IncomeTax: tax})
			total = total.Add(net)
			withheld = withheld.Add(tax)
		}

		assert.True(t, withheld.Equal(progressiveTax(brackets, total)),
			"run %d: withheld %s, full-year tax %s on %s", run, withheld, progressiveTax(brackets, total), total)
	}
}

func TestIncrementalTaxMonotoneInCurrentNet(t *testing.T) {
	brackets := DefaultTaxConfig().Brackets
	priors := []PriorPeriod{{Month: 1, TaxableNet: dec("14000"), IncomeTax: dec("3220")}}

	low, _ := incrementalTax(brackets, priors, dec("1000"))
	high, _ := incrementalTax(brackets, priors, dec("2000"))
	assert.True(t, high.GreaterThan(low))
}
