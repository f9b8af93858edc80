package contracts

import (
	"context"
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

// ContractSnapshot resolves the full read-only payroll input for one
// employee: contract, agreement, level and the agreement's active elements.
func (s *Store) ContractSnapshot(ctx context.Context, employeeID string) (Snapshot, error) {
	var snap Snapshot
	var agreementID, levelID *string
	err := s.DB.QueryRow(ctx, `
    SELECT e.id, e.first_name, e.last_name, e.email, e.hire_date,
           c.agreement_id::text, c.level_id::text,
           c.contract_type, c.weekly_hours, c.part_time_pct, c.superminimo,
           c.regional_surtax_pct, c.municipal_surtax_pct,
           c.employment_credit, c.dependent_children, c.iban
    FROM contracts c
    JOIN employees e ON c.employee_id = e.id
    WHERE c.employee_id = $1
  `, employeeID).Scan(
		&snap.EmployeeID, &snap.FirstName, &snap.LastName, &snap.Email, &snap.HireDate,
		&agreementID, &levelID,
		&snap.ContractType, &snap.WeeklyHours, &snap.PartTimePct, &snap.Superminimo,
		&snap.RegionalSurtaxPct, &snap.MunicipalSurtaxPct,
		&snap.EmploymentCredit, &snap.DependentChildren, &snap.IBAN,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, ErrContractNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}

	if agreementID == nil {
		return Snapshot{}, ErrAgreementNotSet
	}
	if levelID == nil {
		return Snapshot{}, ErrLevelNotSet
	}

	agreement, err := s.GetAgreement(ctx, *agreementID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load agreement: %w", err)
	}
	snap.Agreement = agreement

	for _, level := range agreement.Levels {
		if level.ID == *levelID {
			snap.Level = level
			break
		}
	}
	if snap.Level.ID == "" {
		return Snapshot{}, ErrLevelNotSet
	}

	return snap, nil
}

func (s *Store) ListAgreements(ctx context.Context) ([]Agreement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, category, valid_from, valid_to,
           vacation_days_per_year, rol_hours_per_year, permit_hours_per_year,
           overtime_weekday_pct, overtime_holiday_pct, overtime_night_pct,
           has_thirteenth, has_fourteenth,
           years_per_seniority_step, seniority_step_amount, max_seniority_steps
    FROM agreements
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agreements []Agreement
	for rows.Next() {
		agreement, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, agreement)
	}
	return agreements, rows.Err()
}

func (s *Store) GetAgreement(ctx context.Context, agreementID string) (Agreement, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, name, category, valid_from, valid_to,
           vacation_days_per_year, rol_hours_per_year, permit_hours_per_year,
           overtime_weekday_pct, overtime_holiday_pct, overtime_night_pct,
           has_thirteenth, has_fourteenth,
           years_per_seniority_step, seniority_step_amount, max_seniority_steps
    FROM agreements
    WHERE id = $1
  `, agreementID)

	agreement, err := scanAgreement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agreement{}, ErrAgreementNotFound
	}
	if err != nil {
		return Agreement{}, err
	}

	if agreement.Levels, err = s.agreementLevels(ctx, agreementID); err != nil {
		return Agreement{}, err
	}
	if agreement.Elements, err = s.agreementElements(ctx, agreementID); err != nil {
		return Agreement{}, err
	}
	return agreement, nil
}

func (s *Store) agreementLevels(ctx context.Context, agreementID string) ([]Level, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, agreement_id, code, description, monthly_base_pay, weekly_hours
    FROM agreement_levels
    WHERE agreement_id = $1
    ORDER BY code
  `, agreementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []Level
	for rows.Next() {
		var level Level
		if err := rows.Scan(&level.ID, &level.AgreementID, &level.Code, &level.Description, &level.MonthlyBasePay, &level.WeeklyHours); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

func (s *Store) agreementElements(ctx context.Context, agreementID string) ([]PayElement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, agreement_id, code, name, calc_kind, value, nature,
           include_in_severance, include_in_thirteenth, active
    FROM pay_elements
    WHERE agreement_id = $1
    ORDER BY code
  `, agreementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var elements []PayElement
	for rows.Next() {
		var element PayElement
		if err := rows.Scan(&element.ID, &element.AgreementID, &element.Code, &element.Name, &element.CalcKind, &element.Value, &element.Nature, &element.IncludeInSeverance, &element.IncludeInThirteenth, &element.Active); err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, rows.Err()
}

// ListActiveContracts returns the slim contract rows the monthly leave
// accrual run iterates over.
func (s *Store) ListActiveContracts(ctx context.Context) ([]ActiveContract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT c.employee_id, c.weekly_hours,
           a.vacation_days_per_year, a.rol_hours_per_year, a.permit_hours_per_year
    FROM contracts c
    JOIN employees e ON c.employee_id = e.id
    JOIN agreements a ON c.agreement_id = a.id
    WHERE e.status = $1 AND (c.end_date IS NULL OR c.end_date >= now())
  `, EmployeeStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActiveContract
	for rows.Next() {
		var contract ActiveContract
		if err := rows.Scan(&contract.EmployeeID, &contract.WeeklyHours, &contract.VacationDaysPerYear, &contract.ROLHoursPerYear, &contract.PermitHoursPerYear); err != nil {
			return nil, err
		}
		out = append(out, contract)
	}
	return out, rows.Err()
}

func scanAgreement(row pgx.Row) (Agreement, error) {
	var agreement Agreement
	err := row.Scan(
		&agreement.ID, &agreement.Name, &agreement.Category, &agreement.ValidFrom, &agreement.ValidTo,
		&agreement.VacationDaysPerYear, &agreement.ROLHoursPerYear, &agreement.PermitHoursPerYear,
		&agreement.OvertimeWeekdayPct, &agreement.OvertimeHolidayPct, &agreement.OvertimeNightPct,
		&agreement.HasThirteenth, &agreement.HasFourteenth,
		&agreement.YearsPerSeniorityStep, &agreement.SeniorityStepAmount, &agreement.MaxSenioritySteps,
	)
	return agreement, err
}
