package process

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// Memory is the remote memory access capability: copy bytes out of, or
// into, another process's address space. The OS backends implement it; the
// scanning operations depend on nothing else.
type Memory interface {
	// ReadMemory copies size bytes starting at addr from the target
	// process into a local buffer.
	ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error)

	// WriteMemory copies data into the target process at addr. The caller
	// owns whatever safety invariants the mutation implies.
	WriteMemory(addr ProcessMemoryAddress, data []byte) error
}

// HostPointerSize is the pointer width of the scanning process itself, in
// bytes. Module.PointerSize defaults to it; override when the target runs
// a different architecture.
const HostPointerSize = ProcessMemorySize(unsafe.Sizeof(uintptr(0)))

// ReadValue reads a fixed-size value of type T at addr. T must be a
// bit-copyable type: the remote bytes are copied verbatim into the value,
// so pointer-bearing types are meaningless across the process boundary.
// This assumes POD and matching endianness.
func ReadValue[T any](m Memory, addr ProcessMemoryAddress) (T, error) {
	var v T
	size := int(unsafe.Sizeof(v))
	data, err := readFull(m, addr, ProcessMemorySize(size))
	if err != nil {
		return v, err
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), size), data)
	return v, nil
}

// readFull rejects implementations that hand back fewer bytes than asked
// for without reporting an error.
func readFull(m Memory, addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error) {
	data, err := m.ReadMemory(addr, size)
	if err != nil {
		return nil, err
	}
	if len(data) < int(size) {
		return nil, fmt.Errorf("%w: short read %d of %s at %s", ErrReadFailed, len(data), size.ToString(), addr.ToString())
	}
	return data, nil
}

// WriteValue writes a fixed-size, bit-copyable value of type T at addr.
func WriteValue[T any](m Memory, addr ProcessMemoryAddress, v T) error {
	data := unsafe.Slice((*byte)(unsafe.Pointer(&v)), int(unsafe.Sizeof(v)))
	return m.WriteMemory(addr, data)
}

// ReadUint8 reads an unsigned 8-bit integer from the specified address
func ReadUint8(m Memory, addr ProcessMemoryAddress) (uint8, error) {
	data, err := readFull(m, addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer from the specified address
func ReadUint16(m Memory, addr ProcessMemoryAddress) (uint16, error) {
	data, err := readFull(m, addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUint32 reads an unsigned 32-bit integer from the specified address
func ReadUint32(m Memory, addr ProcessMemoryAddress) (uint32, error) {
	data, err := readFull(m, addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUint64 reads an unsigned 64-bit integer from the specified address
func ReadUint64(m Memory, addr ProcessMemoryAddress) (uint64, error) {
	data, err := readFull(m, addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadPointer reads an unsigned value of the given width (4 or 8 bytes) at
// addr and widens it to a ProcessMemoryAddress.
func ReadPointer(m Memory, addr ProcessMemoryAddress, width ProcessMemorySize) (ProcessMemoryAddress, error) {
	switch width {
	case 4:
		v, err := ReadUint32(m, addr)
		return ProcessMemoryAddress(v), err
	case 8:
		v, err := ReadUint64(m, addr)
		return ProcessMemoryAddress(v), err
	default:
		return 0, fmt.Errorf("unsupported pointer width %d", width)
	}
}
