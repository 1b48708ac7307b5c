package dbf

import "go.uber.org/zap"

//Logger is the subset of *zap.SugaredLogger a File needs. Satisfying it with
//a no-op implementation silences diagnostic output entirely.
type Logger interface {
	Warnf(template string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...interface{}) {}

//Option configures a File at construction time.
type Option func(*File)

//WithLogger directs a File's warnings (Date-field width corrections,
//declared-field mismatches, and the failures WriteHead and ReadHead report)
//to the given Logger instead of discarding them.
func WithLogger(l Logger) Option {
	return func(f *File) { f.log = l }
}

//WithZapLogger is a convenience wrapper around WithLogger for the common
//case of an already-constructed zap logger.
func WithZapLogger(l *zap.SugaredLogger) Option {
	return WithLogger(l)
}

//WithCheapPrepend overrides the scratch Buffer's cheap-prepend gap. The
//default matches buffer.CheapPrepend.
func WithCheapPrepend(n int) Option {
	return func(f *File) { f.cheapPrepend = n }
}

//WithLockRetry overrides how many times a File retries an advisory lock
//acquisition that returns EAGAIN before giving up, and the sleep between
//attempts in milliseconds. The default is unbounded retry with a 10ms
//backoff, matching the source's blocking-lock behavior.
func WithLockRetry(attempts int, backoffMillis int) Option {
	return func(f *File) {
		f.lockAttempts = attempts
		f.lockBackoffMillis = backoffMillis
	}
}
