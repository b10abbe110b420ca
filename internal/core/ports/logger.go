package ports

//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks

// Logger defines the interface for logging. Error takes an error value
// (rather than a pre-formatted string) so structured fields, including
// zerr metadata, ride along to the handler.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error, args ...any)
}
