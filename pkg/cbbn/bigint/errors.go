package bigint

import "errors"

var (
	// ErrDivisionByZero indicates a division, remainder or reduction by zero.
	ErrDivisionByZero = errors.New("bigint: division by zero")

	// ErrNonPositiveModulus indicates a modulus that is zero or negative where
	// a positive one is required.
	ErrNonPositiveModulus = errors.New("bigint: modulus must be positive")

	// ErrEvenModulus indicates Montgomery reduction was requested for an even
	// modulus.
	ErrEvenModulus = errors.New("bigint: montgomery reduction requires an odd modulus")

	// ErrNegativeExponent indicates a negative exponent was passed to ModPow.
	ErrNegativeExponent = errors.New("bigint: negative exponent")

	// ErrInvalidBase indicates a string radix outside [2, 36].
	ErrInvalidBase = errors.New("bigint: base must be between 2 and 36")

	// ErrInvalidSyntax indicates a numeric string that could not be parsed.
	ErrInvalidSyntax = errors.New("bigint: invalid syntax")

	// ErrUnsupportedDigitBits indicates a limb width other than 26, 28 or 30.
	ErrUnsupportedDigitBits = errors.New("bigint: unsupported digit width")

	// ErrUnsupportedMulAdd indicates an unknown multiply-accumulate primitive.
	ErrUnsupportedMulAdd = errors.New("bigint: unsupported multiply-accumulate primitive")

	// ErrInvalidBitLength indicates a negative bit length for random values.
	ErrInvalidBitLength = errors.New("bigint: invalid bit length")
)
