package contracts

const (
	CalcKindFixed        = "fixed"
	CalcKindPercentBase  = "percent_base"
	CalcKindPercentTotal = "percent_total"

	NatureTaxable          = "taxable"
	NatureExempt           = "exempt"
	NatureFiscalOnly       = "fiscal_only"
	NatureContributionOnly = "contribution_only"

	ContractPermanent  = "permanent"
	ContractFixedTerm  = "fixed_term"
	ContractApprentice = "apprentice"
	ContractAgency     = "agency"

	EmployeeStatusActive = "active"
)
