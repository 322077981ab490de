package cashflow

import "errors"

var (
	ErrEntryNotFound = errors.New("cash flow entry not found")
	ErrInvalidKind   = errors.New("invalid cash flow kind")
)
