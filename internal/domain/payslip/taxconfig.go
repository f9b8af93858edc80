package payslip

import "github.com/shopspring/decimal"

// TaxBracket is one IRPEF bracket. A zero Ceiling marks the unbounded top
// bracket; brackets are ordered by ascending ceiling with the top one last.
type TaxBracket struct {
	Ceiling decimal.Decimal
	Rate    decimal.Decimal
}

// TaxConfig is the fiscal parameter snapshot passed by value into every
// computation. There is no process-wide registry: callers own the config.
type TaxConfig struct {
	Brackets []TaxBracket

	// EmployeeContributionRate is the INPS percentage withheld from the
	// contribution base. A single rate stands in for the category-specific
	// tables of a full system.
	EmployeeContributionRate decimal.Decimal
}

// DefaultTaxConfig returns the 2025 IRPEF brackets and the standard employee
// INPS rate. Review yearly.
func DefaultTaxConfig() TaxConfig {
	return TaxConfig{
		Brackets: []TaxBracket{
			{Ceiling: decimal.NewFromInt(15000), Rate: decimal.NewFromInt(23)},
			{Ceiling: decimal.NewFromInt(28000), Rate: decimal.NewFromInt(25)},
			{Ceiling: decimal.NewFromInt(50000), Rate: decimal.NewFromInt(35)},
			{Rate: decimal.NewFromInt(43)},
		},
		EmployeeContributionRate: decimal.NewFromFloat(9.19),
	}
}
