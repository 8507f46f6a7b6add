// Package logging provides a minimal logging facade for cb-bn-go.
//
// The Logger interface wraps a subset of log/slog. Two implementations ship
// with the package: New binds to a *slog.Logger and NewZerolog adapts a
// zerolog.Logger, which is what the cbbn-go CLI uses.
//
// # Usage
//
//	logger := logging.New(nil) // slog.Default()
//	logger.Warn(ctx, "invalid RSA public key", "field", "n")
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	logger = logging.NewZerolog(zl)
//
// # Redaction
//
// Private exponents and prime factors must never be logged. Use Redacted to
// record that a field existed without printing it:
//
//	logger.Debug(ctx, "private key loaded", logging.Redacted("d"))
//	// d="[redacted]"
package logging
