package payslip

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"paghe/internal/domain/contracts"
)

// earnings is the gross side of a computation: the earning line items plus
// the severance base accumulated while building them. The severance base is
// not derivable from the line flags, so it is carried alongside.
type earnings struct {
	lines         []LineItem
	severanceBase decimal.Decimal
}

// buildEarnings produces all earning line items for one period: ordinary
// pay, one line per overtime kind with hours, and one line per active pay
// element. Line totals are rounded to two decimals as they are produced so
// the taxable bases re-aggregate without drift.
func buildEarnings(snap contracts.Snapshot, hours Hours, at time.Time) (earnings, error) {
	rate, err := snap.HourlyRate(at)
	if err != nil {
		return earnings{}, err
	}

	out := earnings{severanceBase: decimal.Zero}

	ordinaryTotal := round2(rate.Mul(hours.Ordinary))
	out.lines = append(out.lines, LineItem{
		Kind:                LineKindEarning,
		Description:         "Retribuzione ordinaria",
		Quantity:            nullDec(hours.Ordinary),
		UnitAmount:          nullDec(rate.Round(4)),
		Total:               ordinaryTotal,
		TaxableFiscal:       true,
		TaxableContribution: true,
	})
	out.severanceBase = out.severanceBase.Add(ordinaryTotal)

	for _, kind := range overtimeKinds {
		worked := hours.overtime(kind)
		if !worked.IsPositive() {
			continue
		}

		pct := overtimePct(snap.Agreement, kind)
		paidRate := rate.Add(rate.Mul(pct).Div(hundred))
		total := round2(paidRate.Mul(worked))
		out.lines = append(out.lines, LineItem{
			Kind:                LineKindEarning,
			Description:         fmt.Sprintf("%s (+%s%%)", overtimeLabel(kind), pct),
			Quantity:            nullDec(worked),
			UnitAmount:          nullDec(paidRate.Round(4)),
			Total:               total,
			TaxableFiscal:       true,
			TaxableContribution: true,
		})
		out.severanceBase = out.severanceBase.Add(total)
	}

	for _, element := range snap.Agreement.Elements {
		if !element.Active {
			continue
		}
		amount := elementAmount(element, ordinaryTotal)
		if !amount.IsPositive() {
			continue
		}

		fiscal, contribution := natureFlags(element.Nature)
		out.lines = append(out.lines, LineItem{
			Kind:                LineKindEarning,
			Description:         element.Name,
			Total:               amount,
			TaxableFiscal:       fiscal,
			TaxableContribution: contribution,
		})
		if element.IncludeInSeverance {
			out.severanceBase = out.severanceBase.Add(amount)
		}
	}

	return out, nil
}

// elementAmount evaluates one pay element against the ordinary base earning.
// Percent-of-total also uses the ordinary base: the running-total variant is
// order-dependent and the upstream payroll data was defined against base pay.
func elementAmount(element contracts.PayElement, ordinaryBase decimal.Decimal) decimal.Decimal {
	switch element.CalcKind {
	case contracts.CalcKindFixed:
		return round2(element.Value)
	case contracts.CalcKindPercentBase, contracts.CalcKindPercentTotal:
		return round2(ordinaryBase.Mul(element.Value).Div(hundred))
	default:
		return decimal.Zero
	}
}

// natureFlags maps an element's tax nature onto the two line item flags.
func natureFlags(nature string) (fiscal, contribution bool) {
	switch nature {
	case contracts.NatureTaxable:
		return true, true
	case contracts.NatureFiscalOnly:
		return true, false
	case contracts.NatureContributionOnly:
		return false, true
	default:
		return false, false
	}
}

// aggregateBases sums earning line totals into the fiscal and contribution
// taxable bases, gated by each line's flags.
func aggregateBases(lines []LineItem) (fiscal, contribution decimal.Decimal) {
	fiscal, contribution = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if line.Kind != LineKindEarning {
			continue
		}
		if line.TaxableFiscal {
			fiscal = fiscal.Add(line.Total)
		}
		if line.TaxableContribution {
			contribution = contribution.Add(line.Total)
		}
	}
	return fiscal, contribution
}

func overtimePct(agreement contracts.Agreement, kind string) decimal.Decimal {
	switch kind {
	case OvertimeWeekday:
		return agreement.OvertimeWeekdayPct
	case OvertimeHoliday:
		return agreement.OvertimeHolidayPct
	case OvertimeNight:
		return agreement.OvertimeNightPct
	default:
		return decimal.Zero
	}
}

func overtimeLabel(kind string) string {
	switch kind {
	case OvertimeWeekday:
		return "Straordinario feriale"
	case OvertimeHoliday:
		return "Straordinario festivo"
	case OvertimeNight:
		return "Straordinario notturno"
	default:
		return "Straordinario"
	}
}

func nullDec(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
