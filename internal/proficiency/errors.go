package proficiency

import "fmt"

// ContractError indicates the caller violated an API contract: claimed
// evidence that wasn't supplied, a malformed scope key, or a record in
// a structurally impossible state. It is surfaced synchronously and
// never silently defaulted.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: contract violation: %v", e.Op, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }
