package httperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthenticated
	KindUnavailable
)

type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness is a rule violation reported as 400.
func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrConflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflict}
}

func ErrForbidden(code string) error {
	return BusinessError{Code: code, Kind: KindForbidden}
}

func ErrUnauthenticated(code string) error {
	return BusinessError{Code: code, Kind: KindUnauthenticated}
}

func ErrUnavailable(code string) error {
	return BusinessError{Code: code, Kind: KindUnavailable}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
