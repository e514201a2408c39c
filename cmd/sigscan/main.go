package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"sigscan/hexdump"
	"sigscan/process"
)

// target is the per-OS backend surface the CLI needs. getProcess is
// defined in the OS-specific files.
type target interface {
	process.Memory
	FindModule(name string) (*process.Module, error)
	Pid() process.ProcessID
	Close() error
}

func main() {
	processFlag := flag.String("process", "", "Target process image name (e.g. 'game.exe')")
	moduleFlag := flag.String("module", "", "Module to scan (e.g. 'client.dll')")
	patternFlag := flag.String("pattern", "", "Signature to search for (e.g. '89 0D ? ? ? ? 8B 0D')")
	derefFlag := flag.Bool("deref", false, "Read the pointer operand at match+offset and print it module-relative")
	offsetFlag := flag.Uint("offset", 0, "Offset of the pointer operand inside the matched bytes (with -deref)")
	extraFlag := flag.Uint("extra", 0, "Constant added to the module-relative result (with -deref)")
	ptrsizeFlag := flag.Uint("ptrsize", 0, "Pointer width of the target in bytes (default: this scanner's width)")
	dumpFlag := flag.Uint("dump", 0, "Bytes of context to hexdump starting at the match")
	flag.Parse()

	if *processFlag == "" || *moduleFlag == "" || *patternFlag == "" {
		fmt.Println("Error: --process, --module and --pattern are required")
		flag.Usage()
		os.Exit(1)
	}

	proc, err := getProcess(*processFlag)
	if err != nil {
		fmt.Printf("Error attaching to process %q: %v\n", *processFlag, err)
		os.Exit(1)
	}
	defer proc.Close()

	fmt.Printf("Attached to process %q (pid %d)\n", *processFlag, proc.Pid())

	mod, err := proc.FindModule(*moduleFlag)
	if err != nil {
		fmt.Printf("Error locating module %q: %v\n", *moduleFlag, err)
		os.Exit(1)
	}
	if *ptrsizeFlag != 0 {
		mod.PointerSize = process.ProcessMemorySize(*ptrsizeFlag)
	}

	fmt.Printf("Module %s at %s (%s)\n", mod.Name, mod.Base.ToString(), mod.Size.ToString())

	addr, err := mod.FindPattern(*patternFlag)
	if errors.Is(err, process.ErrPatternNotFound) {
		fmt.Println("Pattern not found")
		os.Exit(2)
	}
	if err != nil {
		fmt.Printf("Error scanning: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Found pattern at %s\n", addr.ToString())

	if *derefFlag {
		off, err := mod.PatternScan(*patternFlag,
			process.ProcessMemorySize(*offsetFlag),
			process.ProcessMemorySize(*extraFlag))
		if err != nil {
			fmt.Printf("Error dereferencing operand: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Module-relative offset 0x%X\n", uint(off))
	}

	if *dumpFlag > 0 {
		data, err := proc.ReadMemory(addr, process.ProcessMemorySize(*dumpFlag))
		if err != nil {
			fmt.Printf("Error reading match context: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(hexdump.Dump(data, uint64(addr), &hexdump.Options{BytesPerLine: 16, Color: true}))
	}
}
