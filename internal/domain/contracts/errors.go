package contracts

import "errors"

var (
	ErrContractNotFound  = errors.New("contract not found for employee")
	ErrAgreementNotSet   = errors.New("contract has no agreement configured")
	ErrLevelNotSet       = errors.New("contract has no inquadramento level configured")
	ErrAgreementNotFound = errors.New("agreement not found")
	ErrZeroContractHours = errors.New("contract weekly hours must be positive")
)
