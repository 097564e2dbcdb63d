package logx

import (
	"context"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates the logger with a pairing session id when available.
func WithSession(log pslog.Logger, sessionID string) pslog.Logger {
	if sessionID != "" {
		log = log.With("session", sessionID)
	}
	return log
}

// WithRepo annotates the logger with the repository path when available.
func WithRepo(log pslog.Logger, path string) pslog.Logger {
	if path != "" {
		log = log.With("repo_path", path)
	}
	return log
}

// ContextWithLogger attaches log to ctx.
func ContextWithLogger(ctx context.Context, log pslog.Logger) context.Context {
	return pslog.ContextWithLogger(ctx, log)
}
