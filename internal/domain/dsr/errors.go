package dsr

import "errors"

var (
	ErrRequestNotFound  = errors.New("dsr request not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAlreadyProcessed = errors.New("request already processed")
)
