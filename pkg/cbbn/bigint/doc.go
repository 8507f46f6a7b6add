// Package bigint implements signed arbitrary-precision integers on top of a
// configurable digit kernel.
//
// An Int stores its value as a vector of limbs of DigitBits bits each (26, 28
// or 30), least significant first, plus a sign that behaves like an infinite
// run of all-zero or all-one limbs. Every Int is bound to a Kernel, which
// fixes the limb width and the multiply-accumulate primitive used by
// multiplication, squaring, division and reduction. Kernels are immutable and
// safe to share; Default returns the process-wide 28-bit kernel.
//
// # Operations
//
//   - Arithmetic: Add, Sub, Mul, Square, DivRem, Mod, GCD, ModInverse
//   - Bitwise (two's complement): And, Or, Xor, AndNot, Not, Lsh, Rsh,
//     TestBit, SetBit, ClearBit, FlipBit
//   - Exponentiation: Pow, ModPow, ModPowInt, ExpWith
//   - Primality: IsProbablePrime, ProbablePrime
//   - Conversion: ParseInt, Text, FromBytes, Bytes, FromUnsignedBytes
//
// # Reducers
//
// Modular exponentiation runs under a Reducer. ModPow picks one per call:
// Classic for exponents under 8 bits, Barrett for even moduli and Montgomery
// otherwise. NewReducer and ExpWith let callers force a strategy.
//
// # Usage Example
//
//	n, err := bigint.ParseInt("a5261939975948bb", 16)
//	if err != nil {
//	    return err
//	}
//	c, err := bigint.NewInt(42).ModPowInt(65537, n)
//
// Operations are not constant time.
package bigint
