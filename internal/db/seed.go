package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed loads a demo CCNL catalog and one employee so a fresh instance can
// compute a payslip immediately. Every insert is idempotent.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	agreementID, err := ensureAgreement(ctx, pool)
	if err != nil {
		return err
	}
	if err := ensureLevels(ctx, pool, agreementID); err != nil {
		return err
	}
	if err := ensureElements(ctx, pool, agreementID); err != nil {
		return err
	}
	employeeID, err := ensureEmployee(ctx, pool)
	if err != nil {
		return err
	}
	return ensureContract(ctx, pool, employeeID, agreementID)
}

func ensureAgreement(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM agreements WHERE name = $1", "CCNL Commercio").Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, `
    INSERT INTO agreements (
      name, category, valid_from,
      vacation_days_per_year, rol_hours_per_year, permit_hours_per_year,
      overtime_weekday_pct, overtime_holiday_pct, overtime_night_pct,
      has_thirteenth, has_fourteenth,
      years_per_seniority_step, seniority_step_amount, max_seniority_steps
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    RETURNING id
  `, "CCNL Commercio", "commercio", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		26, 56, 32,
		15, 30, 50,
		true, true,
		3, 25.00, 10,
	).Scan(&id)
	return id, err
}

func ensureLevels(ctx context.Context, pool *pgxpool.Pool, agreementID string) error {
	levels := []struct {
		code        string
		description string
		basePay     float64
	}{
		{"1", "Quadro / primo livello", 2450.00},
		{"2", "Secondo livello", 2210.00},
		{"3", "Terzo livello", 2010.00},
		{"4", "Quarto livello", 1880.00},
		{"5", "Quinto livello", 1740.00},
		{"6", "Sesto livello", 1640.00},
	}
	for _, level := range levels {
		_, err := pool.Exec(ctx, `
      INSERT INTO agreement_levels (agreement_id, code, description, monthly_base_pay, weekly_hours)
      VALUES ($1,$2,$3,$4,40)
      ON CONFLICT (agreement_id, code) DO NOTHING
    `, agreementID, level.code, level.description, level.basePay)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureElements(ctx context.Context, pool *pgxpool.Pool, agreementID string) error {
	elements := []struct {
		code               string
		name               string
		calcKind           string
		value              float64
		nature             string
		includeInSeverance bool
	}{
		{"CONT", "Contingenza", "fixed", 150.00, "taxable", true},
		{"EDR", "Elemento distinto della retribuzione", "fixed", 10.33, "taxable", true},
		{"MENSA", "Indennità mensa", "fixed", 80.00, "exempt", false},
	}
	for _, element := range elements {
		_, err := pool.Exec(ctx, `
      INSERT INTO pay_elements (agreement_id, code, name, calc_kind, value, nature, include_in_severance, include_in_thirteenth, active)
      VALUES ($1,$2,$3,$4,$5,$6,$7,true,true)
      ON CONFLICT (agreement_id, code) DO NOTHING
    `, agreementID, element.code, element.name, element.calcKind, element.value, element.nature, element.includeInSeverance)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureEmployee(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", "anna.bianchi@example.it").Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, hire_date)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, "Anna", "Bianchi", "anna.bianchi@example.it", time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)).Scan(&id)
	return id, err
}

func ensureContract(ctx context.Context, pool *pgxpool.Pool, employeeID, agreementID string) error {
	var levelID string
	if err := pool.QueryRow(ctx, "SELECT id FROM agreement_levels WHERE agreement_id = $1 AND code = $2", agreementID, "4").Scan(&levelID); err != nil {
		return err
	}

	_, err := pool.Exec(ctx, `
    INSERT INTO contracts (
      employee_id, agreement_id, level_id, contract_type,
      weekly_hours, superminimo, regional_surtax_pct, municipal_surtax_pct, employment_credit, iban
    ) VALUES ($1,$2,$3,'permanent',40,100.00,1.73,0.80,true,'IT60X0542811101000000123456')
    ON CONFLICT (employee_id) DO NOTHING
  `, employeeID, agreementID, levelID)
	return err
}
