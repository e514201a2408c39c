// Package process provides the shared types for inspecting another running
// process: memory addressing, the remote memory access capability, and
// module descriptors with signature scanning operations.
//
// OS-specific process and module discovery lives in the process_windows and
// process_linux packages.
package process

import "errors"

var (
	// ErrSnapshotFailed is returned when an OS process or module snapshot
	// cannot be created.
	ErrSnapshotFailed = errors.New("snapshot failed")

	// ErrEnumeration is returned when advancing a snapshot fails with
	// anything other than the benign end-of-enumeration status. It is a
	// hard failure, distinct from ErrProcessNotFound and ErrModuleNotFound.
	ErrEnumeration = errors.New("snapshot enumeration failed")

	// ErrProcessNotFound is returned when the process enumeration is
	// exhausted without matching the requested name.
	ErrProcessNotFound = errors.New("process not found")

	// ErrModuleNotFound is returned when the module enumeration is
	// exhausted without matching the requested name.
	ErrModuleNotFound = errors.New("module not found")

	// ErrReadFailed is returned when a remote memory read fails, typically
	// because the address is unmapped or access is denied.
	ErrReadFailed = errors.New("remote read failed")

	// ErrWriteFailed is returned when a remote memory write fails.
	ErrWriteFailed = errors.New("remote write failed")

	// ErrPatternNotFound is returned by the scanning operations when the
	// signature does not occur in the searched region.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrProcessNotOpen is returned when an operation requiring an open
	// process is attempted before Open or after Close.
	ErrProcessNotOpen = errors.New("process not open")
)
