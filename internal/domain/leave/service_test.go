package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paghe/internal/domain/contracts"
)

type fakeTx struct {
	store      *fakeStore
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	t.store.commit()
	return nil
}
func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	t.store.rollback()
	return nil
}
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn { return nil }

// fakeStore keeps writes in a pending set until the transaction commits, so
// tests can observe what a rollback leaves behind.
type fakeStore struct {
	accrued        map[string]decimal.Decimal
	runs           map[string]int
	residuals      map[string]decimal.Decimal
	pendingAccrued map[string]decimal.Decimal
	pendingRuns    map[string]int
	failEmployee   string
	lastTx         *fakeTx
}

func newLedgerStore() *fakeStore {
	return &fakeStore{
		accrued:   map[string]decimal.Decimal{},
		runs:      map[string]int{},
		residuals: map[string]decimal.Decimal{},
	}
}

func balanceKey(employeeID, leaveType string) string {
	return employeeID + "/" + leaveType
}

func runKey(year, month int) string {
	return fmt.Sprintf("%d-%d", year, month)
}

func (s *fakeStore) BeginTx(ctx context.Context) (pgx.Tx, error) {
	s.pendingAccrued = map[string]decimal.Decimal{}
	s.pendingRuns = map[string]int{}
	s.lastTx = &fakeTx{store: s}
	return s.lastTx, nil
}

func (s *fakeStore) commit() {
	for key, hours := range s.pendingAccrued {
		s.accrued[key] = s.accrued[key].Add(hours)
	}
	for key, count := range s.pendingRuns {
		s.runs[key] = count
	}
	s.pendingAccrued = nil
	s.pendingRuns = nil
}

func (s *fakeStore) rollback() {
	s.pendingAccrued = nil
	s.pendingRuns = nil
}

func (s *fakeStore) ClaimAccrualRunTx(ctx context.Context, tx pgx.Tx, year, month int) (bool, error) {
	if _, done := s.runs[runKey(year, month)]; done {
		return false, nil
	}
	s.pendingRuns[runKey(year, month)] = 0
	return true, nil
}

func (s *fakeStore) AddAccrualTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, hours decimal.Decimal) error {
	if employeeID == s.failEmployee {
		return errors.New("connection reset")
	}
	key := balanceKey(employeeID, leaveType)
	s.pendingAccrued[key] = s.pendingAccrued[key].Add(hours)
	return nil
}

func (s *fakeStore) FinishAccrualRunTx(ctx context.Context, tx pgx.Tx, year, month, employeesAccrued int) error {
	s.pendingRuns[runKey(year, month)] = employeesAccrued
	return nil
}

func (s *fakeStore) AddConsumedTx(ctx context.Context, tx pgx.Tx, employeeID string, year int, leaveType string, delta decimal.Decimal) (decimal.Decimal, error) {
	key := balanceKey(employeeID, leaveType)
	s.residuals[key] = s.residuals[key].Sub(delta)
	return s.residuals[key], nil
}

func (s *fakeStore) ListBalances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	return nil, nil
}

type fakeContracts struct {
	list []contracts.ActiveContract
}

func (c *fakeContracts) ListActiveContracts(ctx context.Context) ([]contracts.ActiveContract, error) {
	return c.list, nil
}

func fullTimeContract(employeeID string) contracts.ActiveContract {
	return contracts.ActiveContract{
		EmployeeID:          employeeID,
		WeeklyHours:         decimal.NewFromInt(40),
		VacationDaysPerYear: 26,
		ROLHoursPerYear:     decimal.NewFromInt(56),
		PermitHoursPerYear:  decimal.NewFromInt(32),
	}
}

func TestRunMonthlyAccrualCreditsActiveContracts(t *testing.T) {
	store := newLedgerStore()
	svc := NewService(store, &fakeContracts{list: []contracts.ActiveContract{
		fullTimeContract("emp-1"),
		fullTimeContract("emp-2"),
	}})

	summary, err := svc.RunMonthlyAccrual(context.Background(), 2025, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.EmployeesAccrued)
	assert.False(t, summary.AlreadyApplied)
	assert.True(t, store.lastTx.committed)

	assert.True(t, store.accrued[balanceKey("emp-1", TypeVacation)].Equal(dec("17.33")))
	assert.True(t, store.accrued[balanceKey("emp-2", TypeROL)].Equal(dec("4.67")))
	assert.Equal(t, 2, store.runs[runKey(2025, 4)])
}

func TestRunMonthlyAccrualAppliedOnce(t *testing.T) {
	store := newLedgerStore()
	svc := NewService(store, &fakeContracts{list: []contracts.ActiveContract{fullTimeContract("emp-1")}})

	_, err := svc.RunMonthlyAccrual(context.Background(), 2025, 4)
	require.NoError(t, err)

	summary, err := svc.RunMonthlyAccrual(context.Background(), 2025, 4)
	require.NoError(t, err)
	assert.True(t, summary.AlreadyApplied)
	assert.Equal(t, 0, summary.EmployeesAccrued)

	// One month's worth, not two.
	assert.True(t, store.accrued[balanceKey("emp-1", TypeVacation)].Equal(dec("17.33")),
		"got %s", store.accrued[balanceKey("emp-1", TypeVacation)])
}

func TestRunMonthlyAccrualPartialFailureLeavesNothing(t *testing.T) {
	store := newLedgerStore()
	store.failEmployee = "emp-2"
	svc := NewService(store, &fakeContracts{list: []contracts.ActiveContract{
		fullTimeContract("emp-1"),
		fullTimeContract("emp-2"),
	}})

	// First employee's credits succeed, then the second one's write dies.
	_, err := svc.RunMonthlyAccrual(context.Background(), 2025, 4)
	require.Error(t, err)
	assert.True(t, store.lastTx.rolledBack)

	// The aborted run committed neither credits nor the run marker.
	assert.True(t, store.accrued[balanceKey("emp-1", TypeVacation)].IsZero())
	_, done := store.runs[runKey(2025, 4)]
	assert.False(t, done)

	// A retry applies exactly one month for everyone.
	store.failEmployee = ""
	summary, err := svc.RunMonthlyAccrual(context.Background(), 2025, 4)
	require.NoError(t, err)
	assert.False(t, summary.AlreadyApplied)
	assert.Equal(t, 2, summary.EmployeesAccrued)
	assert.True(t, store.accrued[balanceKey("emp-1", TypeVacation)].Equal(dec("17.33")))
	assert.True(t, store.accrued[balanceKey("emp-2", TypeVacation)].Equal(dec("17.33")))
}

func TestRunMonthlyAccrualInvalidMonth(t *testing.T) {
	svc := NewService(newLedgerStore(), &fakeContracts{})

	_, err := svc.RunMonthlyAccrual(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestConsumeTxOverdraw(t *testing.T) {
	store := newLedgerStore()
	store.residuals[balanceKey("emp-1", TypeVacation)] = dec("10")
	svc := NewService(store, &fakeContracts{})
	tx := &fakeTx{store: store}

	overdrawn, err := svc.ConsumeTx(context.Background(), tx, "emp-1", 2025, TypeVacation, dec("12"), false)
	require.NoError(t, err)
	assert.True(t, overdrawn)
}

func TestConsumeTxOverrideSuppressesOverdraw(t *testing.T) {
	store := newLedgerStore()
	store.residuals[balanceKey("emp-1", TypeROL)] = dec("1")
	svc := NewService(store, &fakeContracts{})
	tx := &fakeTx{store: store}

	overdrawn, err := svc.ConsumeTx(context.Background(), tx, "emp-1", 2025, TypeROL, dec("5"), true)
	require.NoError(t, err)
	assert.False(t, overdrawn)
}

func TestConsumeTxSickNeverOverdraws(t *testing.T) {
	store := newLedgerStore()
	svc := NewService(store, &fakeContracts{})
	tx := &fakeTx{store: store}

	overdrawn, err := svc.ConsumeTx(context.Background(), tx, "emp-1", 2025, TypeSick, dec("40"), false)
	require.NoError(t, err)
	assert.False(t, overdrawn)
}

func TestConsumeTxUnknownType(t *testing.T) {
	svc := NewService(newLedgerStore(), &fakeContracts{})
	tx := &fakeTx{store: newLedgerStore()}

	_, err := svc.ConsumeTx(context.Background(), tx, "emp-1", 2025, "sabbatical", dec("8"), false)
	assert.ErrorIs(t, err, ErrUnknownType)
}
