package leave

const (
	TypeVacation = "vacation"
	TypeROL      = "rol"
	TypePermit   = "permit"
	TypeSick     = "sick"
)

// accrualTypes are the pooled leave types that mature monthly. Sickness is
// tracked for consumption only and has no pool to overdraw.
var accrualTypes = []string{TypeVacation, TypeROL, TypePermit}

func isPooled(leaveType string) bool {
	for _, known := range accrualTypes {
		if leaveType == known {
			return true
		}
	}
	return false
}
