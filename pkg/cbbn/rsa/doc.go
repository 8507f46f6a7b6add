// Package rsa implements textbook RSA with PKCS#1 v1.5 type 2 padding on top
// of package bigint.
//
// # Keys
//
// A Key starts empty and is populated from hex strings or generated:
//
//	key := rsa.NewKey()
//	if err := key.SetPublic(nHex, "10001"); err != nil {
//	    return err
//	}
//	ct, err := key.EncryptString("hello")
//
//	priv := rsa.NewKey(rsa.WithLogger(logger))
//	if err := priv.Generate(ctx, 1024, "10001"); err != nil {
//	    return err
//	}
//
// Setters parse every field before touching the key, so a rejected call
// leaves the previous contents in place.
//
// # Private Operations
//
// With p, q, dp, dq and qinv present, DoPrivate exponentiates modulo each
// prime and recombines; otherwise it computes x^d mod n directly.
// DoPrivateDirect always takes the direct path.
//
// # Errors
//
// Failures are reported as *Error values wrapping one of the package
// sentinels, so callers match with errors.Is:
//
//	if _, err := key.Decrypt(ct); errors.Is(err, rsa.ErrInvalidPadding) {
//	    // wrong key or corrupted ciphertext
//	}
//
// Nothing in this package is constant time and the padding scheme is
// malleable. It exists to exercise the big-integer kernel, not to protect
// data.
package rsa
