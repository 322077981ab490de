package bill

import "errors"

var (
	ErrTableNotFound    = errors.New("table not found")
	ErrTableNameExists  = errors.New("table name already exists")
	ErrBillNotFound     = errors.New("bill not found")
	ErrBillItemNotFound = errors.New("bill item not found")
	ErrBillNotOpen      = errors.New("bill is not open")
	ErrTableOccupied    = errors.New("table already has an open bill")
)
