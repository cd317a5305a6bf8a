package compgraph

import "go.uber.org/zap"

// logger returns l, or a no-op zap.Logger if l is nil. Run accepts a
// *zap.Logger through the ExecOptions passed to each call rather than a
// package-level global, so multiple graphs can run concurrently
// with independent loggers; a nil logger is the common case in tests and
// one-off tools and should be silent rather than panic.
func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
