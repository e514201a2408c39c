//go:build linux

package process_linux

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sigscan/process"
)

// mapping is one parsed line of /proc/<pid>/maps.
type mapping struct {
	start uint64
	end   uint64
	perms string
	path  string
}

// FindModule returns a descriptor for the loaded module whose backing
// file's basename equals name (case-sensitive), e.g. "libc.so.6". The
// module's extent is the span of the first contiguous run of mappings
// backed by that file.
func (p *LinuxProcess) FindModule(name string) (*process.Module, error) {
	p.mu.Lock()
	pid := p.pid
	p.mu.Unlock()
	if pid == 0 {
		return nil, process.ErrProcessNotOpen
	}

	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", process.ErrSnapshotFailed, err)
	}
	defer f.Close()

	base, size, path, err := scanModuleMaps(f, name)
	if err != nil {
		return nil, fmt.Errorf("%w in pid %d", err, pid)
	}

	mod := process.NewModule(p, name, path,
		process.ProcessMemoryAddress(base),
		process.ProcessMemorySize(size))
	p.log.Infoln("Module found:", mod.Name, "base", mod.Base.ToString(), "size", mod.Size.ToString())
	return mod, nil
}

// scanModuleMaps walks one maps stream for the named module. A read
// failure mid-stream is a hard ErrEnumeration; walking the whole stream
// without a match is the benign ErrModuleNotFound. The two are never
// collapsed.
func scanModuleMaps(r io.Reader, name string) (base, size uint64, path string, err error) {
	maps, err := parseMaps(r)
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %v", process.ErrEnumeration, err)
	}
	base, size, path, ok := findModuleExtent(maps, name)
	if !ok {
		return 0, 0, "", fmt.Errorf("%w: %q", process.ErrModuleNotFound, name)
	}
	return base, size, path, nil
}

// parseMaps parses /proc maps lines, e.g.
//
//	00400000-0040b000 r-xp 00000000 08:01 1234 /usr/bin/game
//
// Lines that do not look like mappings are skipped; a read failure
// mid-stream is an error.
func parseMaps(r io.Reader) ([]mapping, error) {
	var maps []mapping

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		addrRange := strings.Split(fields[0], "-")
		if len(addrRange) != 2 {
			continue
		}
		start, err := strconv.ParseUint(addrRange[0], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(addrRange[1], 16, 64)
		if err != nil {
			continue
		}

		m := mapping{start: start, end: end, perms: fields[1]}
		if len(fields) >= 6 {
			m.path = fields[5]
		}
		maps = append(maps, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return maps, nil
}

// findModuleExtent locates the first run of mappings backed by a file
// whose basename equals name and returns its base address and total span.
func findModuleExtent(maps []mapping, name string) (base, size uint64, path string, ok bool) {
	for i, m := range maps {
		if m.path == "" || filepath.Base(m.path) != name {
			continue
		}
		base, path = m.start, m.path
		end := m.end
		for _, n := range maps[i+1:] {
			if n.path != path {
				break
			}
			end = n.end
		}
		return base, end - base, path, true
	}
	return 0, 0, "", false
}
