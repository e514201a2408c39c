//go:build windows

package main

import (
	"sigscan/process_windows"
)

func getProcess(name string) (target, error) {
	return process_windows.Open(name)
}
