package lockguard

import (
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// lsofGuard queries the open-file table with lsof on Unix-like systems.
type lsofGuard struct {
	logger *slog.Logger
}

func (g *lsofGuard) ReleaseHolders(path string) error {
	holders, err := g.holdersOf(path)
	if err != nil {
		return err
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

func (g *lsofGuard) holdersOf(path string) ([]Holder, error) {
	cmd := exec.Command("lsof", path)
	output, err := cmd.Output()
	if err != nil {
		// lsof exits 1 when nothing has the file open.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		g.logger.Error("failed to check processes using the file", "file", path, "error", err)
		return nil, err
	}
	return parseLsofOutput(string(output)), nil
}

// parseLsofOutput extracts holders from lsof's tabular output,
// skipping the header line.
func parseLsofOutput(output string) []Holder {
	var holders []Holder

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) < 2 {
		return nil
	}
	for _, line := range lines[1:] {
		columns := strings.Fields(line)
		if len(columns) < 2 {
			continue
		}
		pid, err := strconv.ParseInt(columns[1], 10, 32)
		if err != nil {
			continue
		}
		holders = append(holders, Holder{PID: int32(pid), Name: columns[0]})
	}
	return holders
}
