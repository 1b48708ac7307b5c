//go:build !windows

package dbf

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

//lockRange acquires a POSIX advisory byte-range lock on f covering
//[start, start+length). write selects F_WRLCK over F_RDLCK. It retries on
//EAGAIN per the File's configured retry policy and returns an unlock func
//that must be called on every exit path.
func lockRange(f *os.File, write bool, start, length int64, attempts, backoffMillis int) (unlock func() error, err error) {
	lockType := int16(unix.F_RDLCK)
	if write {
		lockType = unix.F_WRLCK
	}
	flock := &unix.Flock_t{
		Type:   lockType,
		Whence: 0,
		Start:  start,
		Len:    length,
	}
	for i := 0; attempts <= 0 || i < attempts; i++ {
		err = unix.FcntlFlock(f.Fd(), unix.F_SETLK, flock)
		if err == nil {
			break
		}
		if !errors.Is(err, unix.EAGAIN) {
			return nil, err
		}
		time.Sleep(time.Duration(backoffMillis) * time.Millisecond)
	}
	if err != nil {
		return nil, err
	}
	unlock = func() error {
		uflock := &unix.Flock_t{Type: unix.F_UNLCK, Whence: 0, Start: start, Len: length}
		return unix.FcntlFlock(f.Fd(), unix.F_SETLK, uflock)
	}
	return unlock, nil
}
