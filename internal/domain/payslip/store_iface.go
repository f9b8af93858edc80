package payslip

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"paghe/internal/domain/contracts"
)

// StoreAPI is the payslip persistence surface the service drives. The Tx
// variants run inside the single computation transaction.
type StoreAPI interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// LockEmployeeYearTx serializes computations for one employee/year so
	// concurrent periods cannot read each other's half-written state.
	LockEmployeeYearTx(ctx context.Context, tx pgx.Tx, employeeID string, year int) error

	GetPayslipForPeriodTx(ctx context.Context, tx pgx.Tx, employeeID string, year, month int) (Payslip, error)
	ConfirmedPriorsTx(ctx context.Context, tx pgx.Tx, employeeID string, year, month int) ([]PriorPeriod, error)
	UpsertPayslipTx(ctx context.Context, tx pgx.Tx, slip Payslip) error
	ReplaceLinesTx(ctx context.Context, tx pgx.Tx, payslipID string, lines []LineItem) error

	GetPayslip(ctx context.Context, payslipID string) (Payslip, error)
	ListPayslips(ctx context.Context, employeeID string, year int) ([]Payslip, error)
	ListLines(ctx context.Context, payslipID string) ([]LineItem, error)
	ConfirmPayslip(ctx context.Context, payslipID string) error
	AnnualSummary(ctx context.Context, employeeID string, year int) (AnnualSummary, error)
	PayslipEmployee(ctx context.Context, payslipID string) (EmployeeInfo, error)
}

// ContractSource is the injected read-only contract catalog access.
type ContractSource interface {
	ContractSnapshot(ctx context.Context, employeeID string) (contracts.Snapshot, error)
}

// LeaveLedger posts absence consumption inside the computation transaction.
type LeaveLedger interface {
	ConsumeTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, hours decimal.Decimal, allowNegative bool) (overdrawn bool, err error)
}

// EmployeeInfo is the header data the PDF renderer prints.
type EmployeeInfo struct {
	FirstName string
	LastName  string
	Email     string
}
