package process

import (
	"fmt"

	"sigscan/pattern"
)

// Module describes one loaded module inside a target process: a main
// binary or shared library mapped at [Base, Base+Size). It holds a
// non-owning reference to the process's memory capability; closing the
// process invalidates the module. Immutable after construction, derived
// fresh per lookup and never cached.
type Module struct {
	mem Memory

	Name string
	Path string
	Base ProcessMemoryAddress
	Size ProcessMemorySize

	// PointerSize is the width in bytes of pointer operands inside the
	// module, used by PatternScan. Defaults to the scanning process's own
	// width; set it explicitly when the target runs a different
	// architecture.
	PointerSize ProcessMemorySize
}

// NewModule builds a module descriptor backed by mem.
func NewModule(mem Memory, name, path string, base ProcessMemoryAddress, size ProcessMemorySize) *Module {
	return &Module{
		mem:         mem,
		Name:        name,
		Path:        path,
		Base:        base,
		Size:        size,
		PointerSize: HostPointerSize,
	}
}

// End returns the first address past the module's memory extent.
func (m *Module) End() ProcessMemoryAddress {
	return m.Base + ProcessMemoryAddress(m.Size)
}

// FindPattern searches the whole module for sig and returns the absolute
// address of the first match, or ErrPatternNotFound when the signature
// does not occur.
func (m *Module) FindPattern(sig string) (ProcessMemoryAddress, error) {
	return m.FindPatternInRange(sig, m.Base, m.End())
}

// FindPatternInRange searches [start, end) for sig. The region is pulled
// into a local buffer in one bulk copy, so the match runs against a
// point-in-time snapshot of the target's memory: a transiently present
// pattern may be missed, and the returned address may be stale by the
// time a follow-up read uses it.
func (m *Module) FindPatternInRange(sig string, start, end ProcessMemoryAddress) (ProcessMemoryAddress, error) {
	p, err := pattern.Compile(sig)
	if err != nil {
		return 0, err
	}
	if end < start {
		return 0, fmt.Errorf("invalid range %s..%s", start.ToString(), end.ToString())
	}

	buf, err := m.mem.ReadMemory(start, ProcessMemorySize(end-start))
	if err != nil {
		return 0, err
	}

	off, ok := pattern.Search(buf, p)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrPatternNotFound, sig, m.Name)
	}
	return start + ProcessMemoryAddress(off), nil
}

// PatternScan finds sig, reads the pointer-sized operand at match+offset,
// and rebases it: operand - Base + extra. The usual use is extracting a
// module-relative static offset from an absolute address operand inside a
// matched instruction. A failed operand read propagates: a match followed
// by an unreadable operand means a wrong offset constant, which the caller
// can correct.
func (m *Module) PatternScan(sig string, offset, extra ProcessMemorySize) (ProcessMemorySize, error) {
	addr, err := m.FindPattern(sig)
	if err != nil {
		return 0, err
	}

	width := m.PointerSize
	if width == 0 {
		width = HostPointerSize
	}
	operand, err := ReadPointer(m.mem, addr+ProcessMemoryAddress(offset), width)
	if err != nil {
		return 0, err
	}
	return ProcessMemorySize(operand-m.Base) + extra, nil
}
