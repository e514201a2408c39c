//go:build linux

package process_linux

import (
	"bytes"
	"errors"
	"os"
	"runtime"
	"testing"
	"unsafe"

	"sigscan/process"
)

func TestFindProcessIDNotFound(t *testing.T) {
	_, err := FindProcessID("no-such-process-5f2f9c1e")
	if !errors.Is(err, process.ErrProcessNotFound) {
		t.Errorf("FindProcessID error = %v, want ErrProcessNotFound", err)
	}
}

func TestFindProcessIDEmptyName(t *testing.T) {
	_, err := FindProcessID("")
	if !errors.Is(err, process.ErrProcessNotFound) {
		t.Errorf("FindProcessID(\"\") error = %v, want ErrProcessNotFound", err)
	}
}

func TestFindModuleNotOpen(t *testing.T) {
	var p LinuxProcess
	_, err := p.FindModule("libc.so.6")
	if !errors.Is(err, process.ErrProcessNotOpen) {
		t.Errorf("FindModule error = %v, want ErrProcessNotOpen", err)
	}
}

func TestOpenPIDMissing(t *testing.T) {
	_, err := OpenPID(process.ProcessID(1 << 30))
	if !errors.Is(err, process.ErrProcessNotFound) {
		t.Errorf("OpenPID error = %v, want ErrProcessNotFound", err)
	}
}

// Reading the test process's own memory exercises the full readv path
// without needing a second process.
func TestReadOwnMemory(t *testing.T) {
	p, err := OpenPID(process.ProcessID(os.Getpid()))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	src := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x13, 0x37}
	addr := process.ProcessMemoryAddress(uintptr(unsafe.Pointer(&src[0])))

	data, err := p.ReadMemory(addr, process.ProcessMemorySize(len(src)))
	if err != nil {
		t.Skipf("process_vm_readv unavailable here: %v", err)
	}
	if !bytes.Equal(data, src) {
		t.Errorf("ReadMemory = % X, want % X", data, src)
	}
	runtime.KeepAlive(src)
}

func TestReadMemoryNotOpen(t *testing.T) {
	var p LinuxProcess
	_, err := p.ReadMemory(0x1000, 4)
	if !errors.Is(err, process.ErrProcessNotOpen) {
		t.Errorf("ReadMemory error = %v, want ErrProcessNotOpen", err)
	}
}
