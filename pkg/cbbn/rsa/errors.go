package rsa

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey indicates an empty or malformed key field
	ErrInvalidKey = errors.New("rsa: invalid key")

	// ErrNoPublicKey indicates the key has no modulus yet
	ErrNoPublicKey = errors.New("rsa: public key not set")

	// ErrNoPrivateKey indicates a private operation on a public-only key
	ErrNoPrivateKey = errors.New("rsa: private key not set")

	// ErrMessageTooLong indicates the message does not fit in one padded block
	ErrMessageTooLong = errors.New("rsa: message too long")

	// ErrInvalidPadding indicates a decrypted block is not PKCS#1 type 2
	ErrInvalidPadding = errors.New("rsa: invalid padding")

	// ErrInvalidCiphertext indicates a ciphertext that is not hex or not below n
	ErrInvalidCiphertext = errors.New("rsa: invalid ciphertext")

	// ErrKeyGeneration indicates key generation gave up after its retry budget
	ErrKeyGeneration = errors.New("rsa: key generation failed")
)

// Error wraps an underlying error with the operation that failed.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rsa.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf creates a new Error
func errorf(op string, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}
