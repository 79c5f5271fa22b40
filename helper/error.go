package helper

import "fmt"

// NewError wraps an error with the context of the failed operation.
// The wrapped error stays reachable through errors.Is/errors.As.
func NewError(context string, err error) error {
	return fmt.Errorf("error %v: %w", context, err)
}
