package payslip

import "github.com/shopspring/decimal"

// Employment tax credit bands (detrazione lavoro dipendente), annual
// amounts. Simplified: ignores worked-days proration.
var (
	creditBandLow  = decimal.NewFromInt(15000)
	creditBandMid  = decimal.NewFromInt(28000)
	creditBandHigh = decimal.NewFromInt(50000)

	creditFloorAmount = decimal.NewFromInt(1955)
	creditBaseAmount  = decimal.NewFromInt(1910)
	creditMidExtra    = decimal.NewFromInt(1190)

	creditMidWidth  = decimal.NewFromInt(13000)
	creditHighWidth = decimal.NewFromInt(22000)

	twelve = decimal.NewFromInt(12)
)

// socialSecurity is the employee INPS withholding on the contribution base.
func socialSecurity(cfg TaxConfig, contributionBase decimal.Decimal) decimal.Decimal {
	return round2(contributionBase.Mul(cfg.EmployeeContributionRate).Div(hundred))
}

// surtax applies a flat regional or municipal rate to the IRPEF-taxable net.
func surtax(taxableNet, ratePct decimal.Decimal) decimal.Decimal {
	return round2(taxableNet.Mul(ratePct).Div(hundred))
}

// employmentCredit returns the monthly employment tax credit for the given
// period fiscal base. Annual income is approximated as base × 12; the credit
// decreases linearly inside each band and vanishes above 50,000.
func employmentCredit(monthlyFiscalBase decimal.Decimal) decimal.Decimal {
	annualIncome := monthlyFiscalBase.Mul(twelve)

	var annualCredit decimal.Decimal
	switch {
	case annualIncome.LessThanOrEqual(creditBandLow):
		annualCredit = creditFloorAmount
	case annualIncome.LessThanOrEqual(creditBandMid):
		share := creditBandMid.Sub(annualIncome).Div(creditMidWidth)
		annualCredit = creditBaseAmount.Add(creditMidExtra.Mul(share))
	case annualIncome.LessThanOrEqual(creditBandHigh):
		share := creditBandHigh.Sub(annualIncome).Div(creditHighWidth)
		annualCredit = creditBaseAmount.Mul(share)
	default:
		return decimal.Zero
	}

	return round2(annualCredit.Div(twelve))
}
