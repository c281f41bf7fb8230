package lockguard

import (
	"log/slog"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// scanGuard walks the process table and inspects each process's open file
// handles. This is the Windows strategy, where no lsof equivalent exists.
type scanGuard struct {
	logger *slog.Logger
}

func (g *scanGuard) ReleaseHolders(path string) error {
	procs, err := process.Processes()
	if err != nil {
		g.logger.Error("failed to enumerate processes", "error", err)
		return err
	}

	var holders []Holder
	for _, proc := range procs {
		openFiles, err := proc.OpenFiles()
		if err != nil {
			// Access denied or the process exited mid-scan; skip it.
			continue
		}
		for _, open := range openFiles {
			if strings.EqualFold(open.Path, path) {
				name, _ := proc.Name()
				holders = append(holders, Holder{PID: proc.Pid, Name: name})
				break
			}
		}
	}

	if len(holders) == 0 {
		g.logger.Debug("no processes are using the file", "file", path)
		return nil
	}
	for _, holder := range holders {
		terminate(holder, g.logger)
	}
	return nil
}
