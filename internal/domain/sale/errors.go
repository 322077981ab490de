package sale

import "errors"

var (
	ErrSaleNotFound = errors.New("sale not found")
	// ErrNoSalesRows signals a workbook with no usable data rows.
	ErrNoSalesRows = errors.New("no usable sales rows in workbook")
)
