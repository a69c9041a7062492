package recommend

import "errors"

var (
	// ErrCustomerNotFound means no profile matched the customer ID.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrUnknownLoanType means the catalog has no loan product of the
	// requested type.
	ErrUnknownLoanType = errors.New("loan type not found")
)
