// Package lockguard releases files held open by other processes before the
// pipeline rewrites them. Termination substitutes for file locking: it is
// best effort, and every failure is logged rather than escalated.
package lockguard

import (
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Holder is a process found with the target file open.
type Holder struct {
	PID  int32
	Name string
}

// Guard enumerates processes holding a file open and terminates them.
type Guard interface {
	// ReleaseHolders terminates every process with path open and waits for
	// each to exit. No holder found is the common case, not an error.
	ReleaseHolders(path string) error
}

// ForHost selects the enumeration strategy for the given GOOS. Unix-like
// hosts query the open-file table through lsof; Windows scans process file
// handles. Anything else gets a logged no-op.
func ForHost(goos string, logger *slog.Logger) Guard {
	switch goos {
	case "darwin", "linux":
		return &lsofGuard{logger: logger}
	case "windows":
		return &scanGuard{logger: logger}
	default:
		return &noopGuard{logger: logger, goos: goos}
	}
}

type noopGuard struct {
	logger *slog.Logger
	goos   string
}

func (g *noopGuard) ReleaseHolders(path string) error {
	g.logger.Warn("busy-file detection unsupported on this platform", "goos", g.goos, "file", path)
	return nil
}

// terminate signals a holder and waits for it to exit. Insufficient
// privilege and already-exited holders are logged, not escalated; the
// subsequent write surfaces any lock that survives.
func terminate(holder Holder, logger *slog.Logger) {
	proc, err := process.NewProcess(holder.PID)
	if err != nil {
		logger.Warn("process already gone", "pid", holder.PID, "name", holder.Name)
		return
	}

	if err := proc.Terminate(); err != nil {
		logger.Error("failed to terminate process holding file", "pid", holder.PID, "name", holder.Name, "error", err)
		return
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		running, err := proc.IsRunning()
		if err != nil || !running {
			logger.Info("terminated process holding file", "pid", holder.PID, "name", holder.Name)
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	logger.Warn("process did not exit after terminate signal", "pid", holder.PID, "name", holder.Name)
}
