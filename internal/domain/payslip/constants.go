package payslip

const (
	LineKindEarning     = "earning"
	LineKindWithholding = "withholding"
	LineKindDeduction   = "deduction"

	OvertimeWeekday = "weekday"
	OvertimeHoliday = "holiday"
	OvertimeNight   = "night"

	AbsenceVacation = "vacation"
	AbsenceROL      = "rol"
	AbsencePermit   = "permit"
	AbsenceSick     = "sick"

	// Non-fatal review flags persisted on the payslip, counted in summaries.
	WarningTaxReconciliation = "irpef_conguaglio"
	WarningLeaveOverdrawn    = "leave_overdrawn"
)

// overtimeKinds fixes the emission order of overtime line items so that
// recomputation is byte-stable.
var overtimeKinds = []string{OvertimeWeekday, OvertimeHoliday, OvertimeNight}

// AbsenceKinds lists every absence bucket accepted on input.
var AbsenceKinds = []string{AbsenceVacation, AbsenceROL, AbsencePermit, AbsenceSick}
