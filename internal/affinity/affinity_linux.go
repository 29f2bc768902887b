//go:build linux
// +build linux

// File: internal/affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package affinity

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to the given CPU. cpu < 0 locks the thread without binding.
// The returned func undoes the lock (the affinity mask is left in place for
// the thread's remaining lifetime).
func PinCurrentThread(cpu int) (undo func(), err error) {
	runtime.LockOSThread()
	if cpu >= 0 {
		var set unix.CPUSet
		set.Zero()
		set.Set(cpu)
		if err := unix.SchedSetaffinity(0, &set); err != nil {
			runtime.UnlockOSThread()
			return nil, err
		}
	}
	return runtime.UnlockOSThread, nil
}
