package leave

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"paghe/internal/domain/contracts"
)

// StoreAPI is the persistence surface the leave service needs. The Tx
// variants run inside a transaction owned by the caller or by the accrual
// run itself.
type StoreAPI interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	ClaimAccrualRunTx(ctx context.Context, tx pgx.Tx, year, month int) (bool, error)
	AddAccrualTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, hours decimal.Decimal) error
	FinishAccrualRunTx(ctx context.Context, tx pgx.Tx, year, month, employeesAccrued int) error
	AddConsumedTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, delta decimal.Decimal) (decimal.Decimal, error)
	ListBalances(ctx context.Context, employeeID string, year int) ([]Balance, error)
}

// ContractSource is the read-only contract access the accrual run needs.
type ContractSource interface {
	ListActiveContracts(ctx context.Context) ([]contracts.ActiveContract, error)
}

type Service struct {
	store     StoreAPI
	contracts ContractSource
}

func NewService(store StoreAPI, contractSource ContractSource) *Service {
	return &Service{store: store, contracts: contractSource}
}

// RunMonthlyAccrual matures one month of leave for every active contract.
// The whole run is a single transaction gated by the run marker row: either
// every employee is credited and the marker committed, or nothing is. A month
// is accrued at most once; reruns are reported, not reapplied, and a run that
// fails partway leaves no marker and no credits behind.
func (s *Service) RunMonthlyAccrual(ctx context.Context, year, month int) (AccrualSummary, error) {
	summary := AccrualSummary{Year: year, Month: month}
	if month < 1 || month > 12 {
		return summary, ErrInvalidPeriod
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return summary, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("leave accrual rollback failed", "err", rbErr)
		}
	}()

	claimed, err := s.store.ClaimAccrualRunTx(ctx, tx, year, month)
	if err != nil {
		return summary, err
	}
	if !claimed {
		summary.AlreadyApplied = true
		return summary, nil
	}

	active, err := s.contracts.ListActiveContracts(ctx)
	if err != nil {
		return summary, err
	}

	for _, contract := range active {
		for leaveType, hours := range MonthlyAccruals(contract) {
			if !hours.IsPositive() {
				continue
			}
			if err := s.store.AddAccrualTx(ctx, tx, contract.EmployeeID, year, leaveType, hours); err != nil {
				return summary, err
			}
		}
		summary.EmployeesAccrued++
	}

	if err := s.store.FinishAccrualRunTx(ctx, tx, year, month, summary.EmployeesAccrued); err != nil {
		return summary, err
	}
	if err := tx.Commit(ctx); err != nil {
		return summary, err
	}

	slog.Info("leave accrual applied", "year", year, "month", month, "employees", summary.EmployeesAccrued)
	return summary, nil
}

// ConsumeTx posts absence hours against a pool inside the caller's
// transaction. Overdrawing a pooled type is reported, never clamped; the
// override flag suppresses the report for sanctioned exceptions.
func (s *Service) ConsumeTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, hours decimal.Decimal, allowNegative bool) (overdrawn bool, err error) {
	if !isPooled(leaveType) && leaveType != TypeSick {
		return false, ErrUnknownType
	}

	residual, err := s.store.AddConsumedTx(ctx, tx, employeeID, year, leaveType, hours)
	if err != nil {
		return false, err
	}

	if isPooled(leaveType) && hours.IsPositive() && residual.IsNegative() && !allowNegative {
		return true, nil
	}
	return false, nil
}

func (s *Service) Balances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	return s.store.ListBalances(ctx, employeeID, year)
}
