//go:build linux

package main

import (
	"sigscan/process_linux"
)

func getProcess(name string) (target, error) {
	return process_linux.Open(name)
}
