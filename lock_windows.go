//go:build windows

package dbf

import (
	"os"

	"golang.org/x/sys/windows"
)

//lockRange acquires a Windows file lock on f. start/length are accepted for
//interface parity with the POSIX implementation but LockFileEx only
//supports whole-file locking reliably across handle types here, so the
//lock always covers the entire file — callers should not rely on
//byte-range isolation on this platform.
func lockRange(f *os.File, write bool, start, length int64, attempts, backoffMillis int) (unlock func() error, err error) {
	handle := windows.Handle(f.Fd())
	var flags uint32
	if write {
		flags = windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(handle, flags, 0, ^uint32(0), ^uint32(0), ol); err != nil {
		return nil, err
	}
	unlock = func() error {
		return windows.UnlockFileEx(handle, 0, ^uint32(0), ^uint32(0), ol)
	}
	return unlock, nil
}
