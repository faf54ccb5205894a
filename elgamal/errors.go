package elgamal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a bit length outside
	// [group.MinBits, group.MaxBits] and for plaintexts or ciphertext
	// components outside the range the key accepts.
	ErrInvalidArgument = errors.New("elgamal: invalid argument")

	// ErrArithmetic matches every ArithmeticError.
	ErrArithmetic = errors.New("elgamal: arithmetic failure")

	errExponentNotFound = errors.New("no secret exponent found within attempt limit")
)

// ArithmeticError wraps a failure from the big integer layer: a field that is
// not a decimal integer, a failed read from the random source, or a
// generator search that ran out of attempts.
type ArithmeticError struct {
	Op  string
	Err error
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("elgamal: %s: %v", e.Op, e.Err)
}

func (e *ArithmeticError) Unwrap() error {
	return e.Err
}

func (e *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

// arithmeticError converts an error returned by the bigint or group packages
// into an ArithmeticError. nil stays nil.
func arithmeticError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ArithmeticError{Op: op, Err: err}
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
