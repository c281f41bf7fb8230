package types

import "log/slog"

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  *slog.Logger
}

// Log returns the context logger, falling back to slog.Default for nil contexts
func (c *AppContext) Log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
