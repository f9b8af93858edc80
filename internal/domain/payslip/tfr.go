package payslip

import "github.com/shopspring/decimal"

// severanceDivisor is the statutory TFR divisor (art. 2120 c.c.). Not the
// 1/12 used elsewhere for pro-rations.
var severanceDivisor = decimal.NewFromFloat(13.5)

// severanceAccrual is the TFR quota matured in one month. Annual revaluation
// of the accumulated fund is a year-end batch concern, not computed here.
func severanceAccrual(severanceBase decimal.Decimal) decimal.Decimal {
	return round2(severanceBase.Div(severanceDivisor))
}
