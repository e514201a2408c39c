//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"unsafe"

	"sigscan/process"

	"golang.org/x/sys/windows"
)

// FindProcessID resolves an executable name to a process id by walking a
// Toolhelp process snapshot. The match is case-sensitive against the
// OS-reported image name.
//
// An exhausted enumeration is the benign ErrProcessNotFound; any other
// failure while advancing the snapshot is ErrEnumeration and terminates
// the walk immediately, without comparing the stale entry again.
func FindProcessID(name string) (process.ProcessID, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", process.ErrSnapshotFailed, err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	for err = windows.Process32First(snap, &entry); err == nil; err = windows.Process32Next(snap, &entry) {
		if windows.UTF16ToString(entry.ExeFile[:]) == name {
			return process.ProcessID(entry.ProcessID), nil
		}
	}
	if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return 0, fmt.Errorf("%w: %q", process.ErrProcessNotFound, name)
	}
	return 0, fmt.Errorf("%w: %v", process.ErrEnumeration, err)
}

// FindModule walks a module snapshot of the target process and returns a
// descriptor for the module with the given file name (case-sensitive).
// The module path is decoded from the snapshot entry's in-record UTF-16
// buffer; no remote read is involved. Exhaustion and hard enumeration
// failures are distinguished the same way as in FindProcessID.
func (p *WindowsProcess) FindModule(name string) (*process.Module, error) {
	p.mu.Lock()
	pid := p.pid
	handle := p.handle
	p.mu.Unlock()
	if handle == 0 {
		return nil, process.ErrProcessNotOpen
	}

	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", process.ErrSnapshotFailed, err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ModuleEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	for err = windows.Module32First(snap, &entry); err == nil; err = windows.Module32Next(snap, &entry) {
		if windows.UTF16ToString(entry.Module[:]) != name {
			continue
		}
		mod := process.NewModule(p, name,
			windows.UTF16ToString(entry.ExePath[:]),
			process.ProcessMemoryAddress(entry.ModBaseAddr),
			process.ProcessMemorySize(entry.ModBaseSize))
		p.log.Infoln("Module found:", mod.Name, "base", mod.Base.ToString(), "size", mod.Size.ToString())
		return mod, nil
	}
	if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return nil, fmt.Errorf("%w: %q in pid %d", process.ErrModuleNotFound, name, pid)
	}
	return nil, fmt.Errorf("%w: %v", process.ErrEnumeration, err)
}
