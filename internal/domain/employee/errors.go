package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeIDExists   = errors.New("employee ID already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrPANExists          = errors.New("PAN number already registered")
	ErrStorageUnavailable = errors.New("employee storage unavailable")
	ErrInvalidEmployeeID  = errors.New("employee ID must be alphanumeric")
)
