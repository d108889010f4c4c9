// Package mathutil holds small arithmetic helpers over any numeric type.
package mathutil

import (
	"errors"
	"slices"
)

// Number is any integer or floating-point type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

var (
	// ErrDivisionByZero is returned by Divide for a zero divisor.
	ErrDivisionByZero = errors.New("Division by zero is not allowed")

	// ErrEmptyAverage, ErrEmptyMax and ErrEmptyMin report an empty input.
	ErrEmptyAverage = errors.New("Cannot calculate average of an empty array")
	ErrEmptyMax     = errors.New("Cannot find maximum of an empty array")
	ErrEmptyMin     = errors.New("Cannot find minimum of an empty array")
)

func Sum[T Number](a, b T) T { return a + b }

func Subtract[T Number](a, b T) T { return a - b }

func Multiply[T Number](a, b T) T { return a * b }

// Divide returns a / b as a float64 so integer inputs are not truncated.
func Divide[T Number](a, b T) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return float64(a) / float64(b), nil
}

// Average returns the arithmetic mean of nums.
func Average[T Number](nums []T) (float64, error) {
	if len(nums) == 0 {
		return 0, ErrEmptyAverage
	}
	var total float64
	for _, n := range nums {
		total += float64(n)
	}
	return total / float64(len(nums)), nil
}

func Max[T Number](nums []T) (T, error) {
	if len(nums) == 0 {
		var zero T
		return zero, ErrEmptyMax
	}
	return slices.Max(nums), nil
}

func Min[T Number](nums []T) (T, error) {
	if len(nums) == 0 {
		var zero T
		return zero, ErrEmptyMin
	}
	return slices.Min(nums), nil
}
