package payslip

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// progressiveTax walks the bracket table over a cumulative base: each
// bracket taxes the slice of income between its floor and ceiling at its
// marginal rate, the unbounded top bracket taxes the remainder.
func progressiveTax(brackets []TaxBracket, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}

	total := decimal.Zero
	remaining := base
	floor := decimal.Zero

	for _, bracket := range brackets {
		if !remaining.IsPositive() {
			break
		}

		portion := remaining
		if !bracket.Ceiling.IsZero() {
			width := bracket.Ceiling.Sub(floor)
			if portion.GreaterThan(width) {
				portion = width
			}
			floor = bracket.Ceiling
		}

		total = total.Add(portion.Mul(bracket.Rate).Div(hundred))
		remaining = remaining.Sub(portion)
	}

	return round2(total)
}

// incrementalTax computes the tax due for the current period under
// cumulative year-to-date taxation: tax the whole cumulative base, then
// subtract what earlier confirmed periods already withheld.
//
// A negative result (possible when prior periods over-withheld near a
// bracket boundary) is clamped to zero and flagged for the year-end
// conguaglio instead of being refunded inline.
func incrementalTax(brackets []TaxBracket, priors []PriorPeriod, currentNet decimal.Decimal) (tax decimal.Decimal, clamped bool) {
	priorBase := decimal.Zero
	priorTax := decimal.Zero
	for _, prior := range priors {
		priorBase = priorBase.Add(prior.TaxableNet)
		priorTax = priorTax.Add(prior.IncomeTax)
	}

	cumulative := progressiveTax(brackets, priorBase.Add(currentNet))
	tax = round2(cumulative.Sub(priorTax))
	if tax.IsNegative() {
		return decimal.Zero, true
	}
	return tax, false
}

// round2 rounds to two decimals, half away from zero. Applied at every
// money-producing step, never on intermediate sums.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
