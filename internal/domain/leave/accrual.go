package leave

import (
	"github.com/shopspring/decimal"

	"paghe/internal/domain/contracts"
)

var (
	five   = decimal.NewFromInt(5)
	twelve = decimal.NewFromInt(12)
)

// MonthlyAccruals returns the hours each pooled leave type matures in one
// month for a contract. The vacation day allowance converts to hours via the
// daily equivalent (weekly hours / 5); ROL and paid permits are annual hour
// pools divided by twelve directly.
func MonthlyAccruals(contract contracts.ActiveContract) map[string]decimal.Decimal {
	dailyHours := contract.WeeklyHours.Div(five)
	vacationDays := decimal.NewFromInt(int64(contract.VacationDaysPerYear))

	return map[string]decimal.Decimal{
		TypeVacation: vacationDays.Mul(dailyHours).Div(twelve).Round(2),
		TypeROL:      contract.ROLHoursPerYear.Div(twelve).Round(2),
		TypePermit:   contract.PermitHoursPerYear.Div(twelve).Round(2),
	}
}
