package services

import "fmt"

// ValidationError rejects a request before any side effect. Message is safe to
// return to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CapabilityError marks a failed text-generation call. Controllers map it to a
// fixed remediation message; Err keeps the upstream cause for the logs.
type CapabilityError struct {
	Op  string
	Err error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: text generation failed: %v", e.Op, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}
