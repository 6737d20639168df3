package models

import "errors"

// Domain errors shared by repositories, services and HTTP handlers.
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInsufficientStock     = errors.New("requested quantity exceeds available stock")
	ErrOverRelease           = errors.New("release would exceed purchased quantity")
	ErrDuplicateSerialNumber = errors.New("serial number already exists")
	ErrDuplicateSupplier     = errors.New("supplier already exists")
	ErrStockInUse            = errors.New("stock record is referenced by sales")
	ErrConcurrentUpdate      = errors.New("record was changed by another request")

	// ErrDataAccess wraps unexpected persistence failures.
	ErrDataAccess = errors.New("data access failure")
)
