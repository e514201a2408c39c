//go:build linux

// Package process_linux implements process attachment, module discovery
// and remote memory access on Linux, using /proc for enumeration and the
// process_vm_readv / process_vm_writev syscalls for memory transfer.
package process_linux

import (
	"fmt"
	"os"
	"sync"

	"sigscan/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var _ process.Memory = (*LinuxProcess)(nil)

// LinuxProcess holds an attached target process. No persistent OS handle
// is involved; the pid is the access token for process_vm_readv.
type LinuxProcess struct {
	pid  process.ProcessID
	name string
	log  *logger.Logger
	mu   sync.Mutex
}

// Open resolves name (e.g. "game", matched case-sensitively against the
// process comm and exe basename) to a running process and attaches to it.
func Open(name string) (*LinuxProcess, error) {
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

// OpenPID attaches to the process with the given id.
func OpenPID(pid process.ProcessID) (*LinuxProcess, error) {
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		return nil, fmt.Errorf("%w: pid %d: %v", process.ErrProcessNotFound, pid, err)
	}

	p := &LinuxProcess{
		pid: pid,
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
	p.log.Infoln("Process opened")
	return p, nil
}

// Pid returns the process id.
func (p *LinuxProcess) Pid() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// Name returns the name the process was resolved from, if Open was used;
// empty for OpenPID.
func (p *LinuxProcess) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Close detaches from the process.
func (p *LinuxProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pid = 0
	p.log.Infoln("Process closed")
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))
	return nil
}
