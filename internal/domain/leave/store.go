package leave

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.BeginTx(ctx, pgx.TxOptions{})
}

// ClaimAccrualRunTx inserts the run marker for (year, month) and reports
// whether this transaction won the claim. The inserted row stays locked until
// commit or rollback, so concurrent runs for the same period serialize on it.
func (s *Store) ClaimAccrualRunTx(ctx context.Context, tx pgx.Tx, year, month int) (bool, error) {
	tag, err := tx.Exec(ctx, `
    INSERT INTO leave_accrual_runs (year, month)
    VALUES ($1,$2)
    ON CONFLICT (year, month) DO NOTHING
  `, year, month)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) FinishAccrualRunTx(ctx context.Context, tx pgx.Tx, year, month, employeesAccrued int) error {
	_, err := tx.Exec(ctx, `
    UPDATE leave_accrual_runs
    SET employees_accrued = $3, completed_at = now()
    WHERE year = $1 AND month = $2
  `, year, month, employeesAccrued)
	return err
}

func (s *Store) AddAccrualTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, hours decimal.Decimal) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, year, leave_type, accrued_hours)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (employee_id, year, leave_type)
    DO UPDATE SET accrued_hours = leave_balances.accrued_hours + EXCLUDED.accrued_hours
  `, employeeID, year, leaveType, hours)
	return err
}

// AddConsumedTx posts a consumption delta inside the caller's transaction and
// returns the resulting residual. Negative deltas reverse earlier postings.
func (s *Store) AddConsumedTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, delta decimal.Decimal) (decimal.Decimal, error) {
	var residual decimal.Decimal
	err := tx.QueryRow(ctx, `
    INSERT INTO leave_balances (employee_id, year, leave_type, consumed_hours)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (employee_id, year, leave_type)
    DO UPDATE SET consumed_hours = leave_balances.consumed_hours + EXCLUDED.consumed_hours
    RETURNING accrued_hours + carryover_hours - consumed_hours
  `, employeeID, year, leaveType, delta).Scan(&residual)
	return residual, err
}

func (s *Store) ListBalances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, year, leave_type, accrued_hours, carryover_hours, consumed_hours
    FROM leave_balances
    WHERE employee_id = $1 AND year = $2
    ORDER BY leave_type
  `, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []Balance
	for rows.Next() {
		var balance Balance
		if err := rows.Scan(&balance.ID, &balance.EmployeeID, &balance.Year, &balance.LeaveType, &balance.AccruedHours, &balance.CarryoverHours, &balance.ConsumedHours); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}
