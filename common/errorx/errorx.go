package errorx

import (
	"errors"
	"fmt"
	"strings"
)

type CoreError interface {
	Error() string
	Code() string
	CustomError() CustomError
}

// CustomError is the standard error struct carried across package
// boundaries. The Prefix-Code pair identifies the error kind, Context
// holds extra detail for logging.
type CustomError struct {
	Prefix  string  `json:"prefix"`
	Code    int     `json:"code"`
	Context context `json:"context,omitempty"`
}

func (err CustomError) Error() string {
	return err.Prefix + "-" + fmt.Sprintf("%d", err.Code)
}

func (err CustomError) Detail() string {
	errorMsg := err.Error()
	if len(err.Context) > 0 {
		var auxParts []string
		for key, value := range err.Context {
			auxParts = append(auxParts, fmt.Sprintf("%s:%v", key, value))
		}
		errorMsg += " [" + strings.Join(auxParts, ", ") + "]"
	}

	return errorMsg
}

// used for errors.Is to check error type
func (err CustomError) Unwrap() error {
	switch err.Prefix {
	case errTagPrefix:
		return errTagMap[errTagCode(err.Code)]
	default:
		return ErrUnknown
	}
}

var (
	ErrUnknown  = errors.New("unknown error")
	ErrNotFound = errors.New("not found")
)
