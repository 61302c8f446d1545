//go:build !windows

package main

import (
	"os"
	"syscall"
)

// The signals that stop an experiment
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
