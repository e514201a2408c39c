//go:build windows

package process_windows

import (
	"fmt"

	"sigscan/process"

	"golang.org/x/sys/windows"
)

// ReadMemory copies size bytes starting at addr out of the target process
// into a local buffer. Short reads are rejected.
func (p *WindowsProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	p.mu.Lock()
	handle := p.handle
	p.mu.Unlock()
	if handle == 0 {
		return nil, process.ErrProcessNotOpen
	}

	buf := make([]byte, size)
	var done uintptr
	err := windows.ReadProcessMemory(handle, uintptr(addr), &buf[0], uintptr(size), &done)
	if err != nil {
		return nil, fmt.Errorf("%w: ReadProcessMemory at %s: %v", process.ErrReadFailed, addr.ToString(), err)
	}
	if done != uintptr(size) {
		return nil, fmt.Errorf("%w: short read %d of %s at %s", process.ErrReadFailed, done, size.ToString(), addr.ToString())
	}
	return buf, nil
}

// WriteMemory copies data into the target process at addr.
func (p *WindowsProcess) WriteMemory(addr process.ProcessMemoryAddress, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	p.mu.Lock()
	handle := p.handle
	p.mu.Unlock()
	if handle == 0 {
		return process.ErrProcessNotOpen
	}

	var done uintptr
	err := windows.WriteProcessMemory(handle, uintptr(addr), &data[0], uintptr(len(data)), &done)
	if err != nil {
		return fmt.Errorf("%w: WriteProcessMemory at %s: %v", process.ErrWriteFailed, addr.ToString(), err)
	}
	if done != uintptr(len(data)) {
		return fmt.Errorf("%w: short write %d of %d bytes at %s", process.ErrWriteFailed, done, len(data), addr.ToString())
	}
	return nil
}
