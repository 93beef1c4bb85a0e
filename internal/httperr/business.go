package httperr

import "errors"

// BusinessError carries a stable code across the usecase boundary so
// handlers can map it to a status without string-matching messages.
type BusinessError struct {
	Code   string
	Reason string
}

func (e BusinessError) Error() string {
	if e.Reason != "" {
		return e.Code + ": " + e.Reason
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessReason(code, reason string) error {
	return BusinessError{Code: code, Reason: reason}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessReason returns the attached reason, if err is a BusinessError.
func BusinessReason(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Reason
	}
	return ""
}
