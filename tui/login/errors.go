package login

import "errors"

var (
	errCredentialsRequired = errors.New("username and password are required")
	errAllFieldsRequired   = errors.New("all fields are required")
	errPasswordMismatch    = errors.New("passwords do not match")
)
