//go:build linux

package process_linux

import (
	"fmt"
	"unsafe"

	"sigscan/process"

	"golang.org/x/sys/unix"
)

// process_vm_readv copies bytesToRead bytes at remoteAddr in the target
// process into a freshly allocated local buffer.
func process_vm_readv(pid process.ProcessID, remoteAddr process.ProcessMemoryAddress, bytesToRead process.ProcessMemorySize) ([]byte, error) {
	buf := make([]byte, bytesToRead)

	localIov := unix.Iovec{
		Base: &buf[0],
		Len:  uint64(bytesToRead),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  int(bytesToRead),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(pid),
		uintptr(unsafe.Pointer(&localIov)),
		uintptr(1),
		uintptr(unsafe.Pointer(&remoteIov)),
		uintptr(1),
		uintptr(0),
	)
	if errno != 0 {
		return nil, fmt.Errorf("process_vm_readv failed: %s (errno: %d)", errno.Error(), int(errno))
	}
	if int(n) != int(bytesToRead) {
		return nil, fmt.Errorf("partial read: %d of %d bytes", n, bytesToRead)
	}
	return buf, nil
}

// process_vm_writev copies localBuf into the target process at remoteAddr.
func process_vm_writev(pid process.ProcessID, remoteAddr process.ProcessMemoryAddress, localBuf []byte) (int, error) {
	localIov := unix.Iovec{
		Base: &localBuf[0],
		Len:  uint64(len(localBuf)),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  len(localBuf),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_WRITEV,
		uintptr(pid),
		uintptr(unsafe.Pointer(&localIov)),
		uintptr(1),
		uintptr(unsafe.Pointer(&remoteIov)),
		uintptr(1),
		uintptr(0),
	)
	if errno != 0 {
		return 0, fmt.Errorf("process_vm_writev failed: %s (errno: %d)", errno.Error(), int(errno))
	}
	return int(n), nil
}

// ReadMemory copies size bytes starting at addr out of the target process
// into a local buffer. Short reads are rejected.
func (p *LinuxProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	p.mu.Lock()
	pid := p.pid
	p.mu.Unlock()
	if pid == 0 {
		return nil, process.ErrProcessNotOpen
	}

	data, err := process_vm_readv(pid, addr, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v at %s", process.ErrReadFailed, err, addr.ToString())
	}
	return data, nil
}

// WriteMemory copies data into the target process at addr.
func (p *LinuxProcess) WriteMemory(addr process.ProcessMemoryAddress, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	p.mu.Lock()
	pid := p.pid
	p.mu.Unlock()
	if pid == 0 {
		return process.ErrProcessNotOpen
	}

	// Copy so a concurrent caller mutation cannot tear the transfer.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	written, err := process_vm_writev(pid, addr, dataCopy)
	if err != nil {
		return fmt.Errorf("%w: %v at %s", process.ErrWriteFailed, err, addr.ToString())
	}
	if written != len(data) {
		return fmt.Errorf("%w: only wrote %d of %d bytes at %s", process.ErrWriteFailed, written, len(data), addr.ToString())
	}
	return nil
}
