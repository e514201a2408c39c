//go:build linux

package process_linux

import (
	"errors"
	"strings"
	"testing"

	"sigscan/process"
)

const sampleMaps = `00400000-0040b000 r-xp 00000000 08:01 1234 /usr/bin/game
0060a000-0060b000 r--p 0000a000 08:01 1234 /usr/bin/game
0060b000-0060c000 rw-p 0000b000 08:01 1234 /usr/bin/game
00c00000-00c21000 rw-p 00000000 00:00 0 [heap]
7f0000000000-7f0000200000 r-xp 00000000 08:01 5678 /usr/lib/libclient.so
7f0000200000-7f0000210000 rw-p 00200000 08:01 5678 /usr/lib/libclient.so
7f0000280000-7f0000290000 rw-p 00000000 00:00 0
7f0000300000-7f0000310000 r-xp 00000000 08:01 5678 /usr/lib/libclient.so
7fff0000000-7fff0021000 rw-p 00000000 00:00 0 [stack]
`

func TestParseMaps(t *testing.T) {
	maps, err := parseMaps(strings.NewReader(sampleMaps))
	if err != nil {
		t.Fatal(err)
	}
	if len(maps) != 9 {
		t.Fatalf("parsed %d mappings, want 9", len(maps))
	}

	first := maps[0]
	if first.start != 0x400000 || first.end != 0x40b000 || first.perms != "r-xp" || first.path != "/usr/bin/game" {
		t.Errorf("first mapping = %+v", first)
	}
	if maps[3].path != "[heap]" {
		t.Errorf("heap mapping path = %q", maps[3].path)
	}
}

func TestParseMapsSkipsGarbage(t *testing.T) {
	maps, err := parseMaps(strings.NewReader("not a mapping line\nzz-zz r--p\n00400000-00401000 r-xp 0 0:0 0 /bin/x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(maps) != 1 {
		t.Fatalf("parsed %d mappings, want 1", len(maps))
	}
}

// failingReader yields some valid data, then fails, like a maps file
// whose backing process dies mid-read.
type failingReader struct {
	data string
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		return copy(p, r.data), nil
	}
	return 0, r.err
}

func TestParseMapsReadFailure(t *testing.T) {
	boom := errors.New("read /proc/1234/maps: input/output error")
	_, err := parseMaps(&failingReader{data: sampleMaps, err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("parseMaps error = %v, want the read failure", err)
	}
}

// A hard mid-enumeration failure must surface as ErrEnumeration, never as
// the benign ErrModuleNotFound — even when the entries read so far do not
// contain the module either.
func TestScanModuleMapsEnumerationFailure(t *testing.T) {
	boom := errors.New("input/output error")
	r := &failingReader{
		data: "00400000-0040b000 r-xp 00000000 08:01 1234 /usr/bin/game\n",
		err:  boom,
	}

	_, _, _, err := scanModuleMaps(r, "missing.so")
	if !errors.Is(err, process.ErrEnumeration) {
		t.Fatalf("scanModuleMaps error = %v, want ErrEnumeration", err)
	}
	if errors.Is(err, process.ErrModuleNotFound) {
		t.Error("hard enumeration failure collapsed into ErrModuleNotFound")
	}
}

func TestScanModuleMapsNotFound(t *testing.T) {
	_, _, _, err := scanModuleMaps(strings.NewReader(sampleMaps), "missing.so")
	if !errors.Is(err, process.ErrModuleNotFound) {
		t.Fatalf("scanModuleMaps error = %v, want ErrModuleNotFound", err)
	}
	if errors.Is(err, process.ErrEnumeration) {
		t.Error("exhausted enumeration reported as ErrEnumeration")
	}
}

func TestFindModuleExtent(t *testing.T) {
	maps, err := parseMaps(strings.NewReader(sampleMaps))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		wantBase uint64
		wantSize uint64
		wantPath string
		ok       bool
	}{
		// Main binary: three contiguous mappings coalesce.
		{"game", 0x400000, 0x0060c000 - 0x400000, "/usr/bin/game", true},
		// Library: only the first run counts, not the mapping detached
		// by the anonymous region.
		{"libclient.so", 0x7f0000000000, 0x210000, "/usr/lib/libclient.so", true},
		{"missing.so", 0, 0, "", false},
		// Basename match only, never substring.
		{"client.so", 0, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, size, path, ok := findModuleExtent(maps, tt.name)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if base != tt.wantBase || size != tt.wantSize || path != tt.wantPath {
				t.Errorf("extent = (0x%X, 0x%X, %q), want (0x%X, 0x%X, %q)",
					base, size, path, tt.wantBase, tt.wantSize, tt.wantPath)
			}
		})
	}
}
