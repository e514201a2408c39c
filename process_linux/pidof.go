//go:build linux

package process_linux

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sigscan/process"
)

// FindProcessID resolves an executable name to a process id by scanning
// /proc. The name is matched case-sensitively against the process comm
// and the exe symlink basename. The lowest matching pid wins, for
// determinism; the scanning process itself is skipped.
func FindProcessID(name string) (process.ProcessID, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", process.ErrProcessNotFound)
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, fmt.Errorf("%w: read /proc: %v", process.ErrSnapshotFailed, err)
	}

	self := os.Getpid()
	best := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}
		if pid == self {
			continue
		}
		if !matchesName(pid, name) {
			continue
		}
		if best == 0 || pid < best {
			best = pid
		}
	}
	if best == 0 {
		return 0, fmt.Errorf("%w: %q", process.ErrProcessNotFound, name)
	}
	return process.ProcessID(best), nil
}

func matchesName(pid int, name string) bool {
	dir := filepath.Join("/proc", strconv.Itoa(pid))

	comm, _ := os.ReadFile(filepath.Join(dir, "comm"))
	if string(bytes.TrimSpace(comm)) == name {
		return true
	}

	// Resolving exe may fail for zombies or without permission.
	exe, _ := os.Readlink(filepath.Join(dir, "exe"))
	return exe != "" && filepath.Base(exe) == name
}
