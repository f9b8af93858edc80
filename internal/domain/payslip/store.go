package payslip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
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

func (s *Store) LockEmployeeYearTx(ctx context.Context, tx pgx.Tx, employeeID string, year int) error {
	_, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", fmt.Sprintf("payslip:%s:%d", employeeID, year))
	return err
}

const payslipColumns = `
    id, employee_id, year, month,
    ordinary_hours, overtime_weekday_hours, overtime_holiday_hours, overtime_night_hours,
    vacation_hours, rol_hours, permit_hours, sick_hours,
    fiscal_base, contribution_base, taxable_net, social_security, income_tax,
    regional_surtax, municipal_surtax, tax_credits, other_withholdings,
    net_pay, severance_accrued, warnings_json, confirmed, computed_at`

func scanPayslip(row pgx.Row) (Payslip, error) {
	var slip Payslip
	var warningsJSON []byte
	err := row.Scan(
		&slip.ID, &slip.EmployeeID, &slip.Year, &slip.Month,
		&slip.OrdinaryHours, &slip.OvertimeWeekdayHours, &slip.OvertimeHolidayHours, &slip.OvertimeNightHours,
		&slip.VacationHours, &slip.ROLHours, &slip.PermitHours, &slip.SickHours,
		&slip.FiscalBase, &slip.ContributionBase, &slip.TaxableNet, &slip.SocialSecurity, &slip.IncomeTax,
		&slip.RegionalSurtax, &slip.MunicipalSurtax, &slip.TaxCredits, &slip.OtherWithholdings,
		&slip.NetPay, &slip.SeveranceAccrued, &warningsJSON, &slip.Confirmed, &slip.ComputedAt,
	)
	if err != nil {
		return Payslip{}, err
	}
	if err := json.Unmarshal(warningsJSON, &slip.Warnings); err != nil {
		slip.Warnings = nil
	}
	return slip, nil
}

func (s *Store) GetPayslipForPeriodTx(ctx context.Context, tx pgx.Tx, employeeID string, year, month int) (Payslip, error) {
	slip, err := scanPayslip(tx.QueryRow(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    WHERE employee_id = $1 AND year = $2 AND month = $3
  `, employeeID, year, month))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, ErrPayslipNotFound
	}
	return slip, err
}

func (s *Store) ConfirmedPriorsTx(ctx context.Context, tx pgx.Tx, employeeID string, year, month int) ([]PriorPeriod, error) {
	rows, err := tx.Query(ctx, `
    SELECT month, taxable_net, income_tax
    FROM payslips
    WHERE employee_id = $1 AND year = $2 AND month < $3 AND confirmed
    ORDER BY month
  `, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var priors []PriorPeriod
	for rows.Next() {
		var prior PriorPeriod
		if err := rows.Scan(&prior.Month, &prior.TaxableNet, &prior.IncomeTax); err != nil {
			return nil, err
		}
		priors = append(priors, prior)
	}
	return priors, rows.Err()
}

func (s *Store) UpsertPayslipTx(ctx context.Context, tx pgx.Tx, slip Payslip) error {
	warningsJSON, err := json.Marshal(slip.Warnings)
	if err != nil {
		return err
	}
	if slip.Warnings == nil {
		warningsJSON = []byte("[]")
	}

	_, err = tx.Exec(ctx, `
    INSERT INTO payslips (
      id, employee_id, year, month,
      ordinary_hours, overtime_weekday_hours, overtime_holiday_hours, overtime_night_hours,
      vacation_hours, rol_hours, permit_hours, sick_hours,
      fiscal_base, contribution_base, taxable_net, social_security, income_tax,
      regional_surtax, municipal_surtax, tax_credits, other_withholdings,
      net_pay, severance_accrued, warnings_json, confirmed, computed_at
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)
    ON CONFLICT (employee_id, year, month)
    DO UPDATE SET
      ordinary_hours = EXCLUDED.ordinary_hours,
      overtime_weekday_hours = EXCLUDED.overtime_weekday_hours,
      overtime_holiday_hours = EXCLUDED.overtime_holiday_hours,
      overtime_night_hours = EXCLUDED.overtime_night_hours,
      vacation_hours = EXCLUDED.vacation_hours,
      rol_hours = EXCLUDED.rol_hours,
      permit_hours = EXCLUDED.permit_hours,
      sick_hours = EXCLUDED.sick_hours,
      fiscal_base = EXCLUDED.fiscal_base,
      contribution_base = EXCLUDED.contribution_base,
      taxable_net = EXCLUDED.taxable_net,
      social_security = EXCLUDED.social_security,
      income_tax = EXCLUDED.income_tax,
      regional_surtax = EXCLUDED.regional_surtax,
      municipal_surtax = EXCLUDED.municipal_surtax,
      tax_credits = EXCLUDED.tax_credits,
      other_withholdings = EXCLUDED.other_withholdings,
      net_pay = EXCLUDED.net_pay,
      severance_accrued = EXCLUDED.severance_accrued,
      warnings_json = EXCLUDED.warnings_json,
      computed_at = EXCLUDED.computed_at
  `,
		slip.ID, slip.EmployeeID, slip.Year, slip.Month,
		slip.OrdinaryHours, slip.OvertimeWeekdayHours, slip.OvertimeHolidayHours, slip.OvertimeNightHours,
		slip.VacationHours, slip.ROLHours, slip.PermitHours, slip.SickHours,
		slip.FiscalBase, slip.ContributionBase, slip.TaxableNet, slip.SocialSecurity, slip.IncomeTax,
		slip.RegionalSurtax, slip.MunicipalSurtax, slip.TaxCredits, slip.OtherWithholdings,
		slip.NetPay, slip.SeveranceAccrued, warningsJSON, slip.Confirmed, slip.ComputedAt,
	)
	return err
}

func (s *Store) ReplaceLinesTx(ctx context.Context, tx pgx.Tx, payslipID string, lines []LineItem) error {
	if _, err := tx.Exec(ctx, "DELETE FROM payslip_lines WHERE payslip_id = $1", payslipID); err != nil {
		return err
	}
	for _, line := range lines {
		_, err := tx.Exec(ctx, `
      INSERT INTO payslip_lines (id, payslip_id, position, kind, description, quantity, unit_amount, total, taxable_fiscal, taxable_contribution)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, line.ID, payslipID, line.Position, line.Kind, line.Description, line.Quantity, line.UnitAmount, line.Total, line.TaxableFiscal, line.TaxableContribution)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetPayslip(ctx context.Context, payslipID string) (Payslip, error) {
	slip, err := scanPayslip(s.DB.QueryRow(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    WHERE id = $1
  `, payslipID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, ErrPayslipNotFound
	}
	return slip, err
}

func (s *Store) ListPayslips(ctx context.Context, employeeID string, year int) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+payslipColumns+`
    FROM payslips
    WHERE employee_id = $1 AND year = $2
    ORDER BY month
  `, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

func (s *Store) ListLines(ctx context.Context, payslipID string) ([]LineItem, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, payslip_id, position, kind, description, quantity, unit_amount, total, taxable_fiscal, taxable_contribution
    FROM payslip_lines
    WHERE payslip_id = $1
    ORDER BY position
  `, payslipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []LineItem
	for rows.Next() {
		var line LineItem
		if err := rows.Scan(&line.ID, &line.PayslipID, &line.Position, &line.Kind, &line.Description, &line.Quantity, &line.UnitAmount, &line.Total, &line.TaxableFiscal, &line.TaxableContribution); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (s *Store) ConfirmPayslip(ctx context.Context, payslipID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE payslips SET confirmed = true WHERE id = $1 AND NOT confirmed", payslipID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var confirmed bool
		if err := s.DB.QueryRow(ctx, "SELECT confirmed FROM payslips WHERE id = $1", payslipID).Scan(&confirmed); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPayslipNotFound
			}
			return err
		}
		return ErrAlreadyConfirmed
	}
	return nil
}

func (s *Store) AnnualSummary(ctx context.Context, employeeID string, year int) (AnnualSummary, error) {
	summary := AnnualSummary{EmployeeID: employeeID, Year: year}
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COALESCE(SUM(ordinary_hours),0),
           COALESCE(SUM(overtime_weekday_hours + overtime_holiday_hours + overtime_night_hours),0),
           COALESCE(SUM(fiscal_base),0),
           COALESCE(SUM(contribution_base),0),
           COALESCE(SUM(social_security),0),
           COALESCE(SUM(income_tax),0),
           COALESCE(SUM(net_pay),0),
           COALESCE(SUM(severance_accrued),0)
    FROM payslips
    WHERE employee_id = $1 AND year = $2
  `, employeeID, year).Scan(
		&summary.PayslipCount,
		&summary.OrdinaryHours, &summary.OvertimeHours,
		&summary.FiscalBase, &summary.ContributionBase,
		&summary.SocialSecurity, &summary.IncomeTax,
		&summary.NetPay, &summary.SeveranceAccrued,
	)
	return summary, err
}

func (s *Store) PayslipEmployee(ctx context.Context, payslipID string) (EmployeeInfo, error) {
	var info EmployeeInfo
	err := s.DB.QueryRow(ctx, `
    SELECT e.first_name, e.last_name, e.email
    FROM payslips p
    JOIN employees e ON p.employee_id = e.id
    WHERE p.id = $1
  `, payslipID).Scan(&info.FirstName, &info.LastName, &info.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeInfo{}, ErrPayslipNotFound
	}
	return info, err
}
