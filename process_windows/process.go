//go:build windows

// Package process_windows implements process attachment, module discovery
// and remote memory access on Windows, using the Toolhelp32 snapshot
// protocol and the kernel32 process memory APIs.
package process_windows

import (
	"fmt"
	"sync"

	"sigscan/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"
)

var _ process.Memory = (*WindowsProcess)(nil)

// WindowsProcess holds an opened target process: its pid and an access
// handle owned exclusively by this struct. Close releases the handle and
// invalidates every module descriptor derived from it.
type WindowsProcess struct {
	pid    process.ProcessID
	name   string
	handle windows.Handle
	log    *logger.Logger
	mu     sync.Mutex
}

// Open resolves name (e.g. "game.exe", matched case-sensitively) to a
// running process and opens an all-access handle to it.
func Open(name string) (*WindowsProcess, error) {
	pid, err := FindProcessID(name)
	if err != nil {
		return nil, err
	}
	p, err := OpenPID(pid)
	if err != nil {
		return nil, err
	}
	p.name = name
	return p, nil
}

// OpenPID opens an all-access handle to the process with the given id.
func OpenPID(pid process.ProcessID) (*WindowsProcess, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_ALL_ACCESS, false, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("OpenProcess(%d) failed: %w", pid, err)
	}

	p := &WindowsProcess{
		pid:    pid,
		handle: handle,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
	p.log.Infoln("Process opened")
	return p, nil
}

// Pid returns the process id.
func (p *WindowsProcess) Pid() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// Name returns the image name the process was resolved from, if Open was
// used; empty for OpenPID.
func (p *WindowsProcess) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Close releases the process handle.
func (p *WindowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle != 0 {
		if err := windows.CloseHandle(p.handle); err != nil {
			return fmt.Errorf("CloseHandle failed: %w", err)
		}
		p.handle = 0
	}
	p.pid = 0

	p.log.Infoln("Process closed")
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))
	return nil
}
