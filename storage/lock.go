package storage

import (
	"fmt"
	"os"
	"syscall"
)

// Lock is an advisory, cross-process exclusivity lock on a relation's
// `.lock` file, kept alongside its `.info`, `.data` and `.ovflow` files. Per spec, the engine itself never locks: "enforcement is
// the caller's responsibility; the engine does not lock". Lock exists so
// the CLI (an external collaborator, and the caller spec.md refers to) can
// honor that contract — one writer, or many readers with no writer — as a
// courtesy to other malh processes on the same machine. Nothing inside
// package relation acquires it.
//
// Only Linux and Darwin are supported; flock is unavailable elsewhere.
type Lock struct {
	file *os.File
}

// OpenLock opens (creating if necessary) the lock file alongside a
// relation's other files.
func OpenLock(name string) (*Lock, error) {
	f, err := os.OpenFile(name+".lock", os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	return &Lock{file: f}, nil
}

// Lock acquires the exclusive (writer) lock, blocking until available.
func (l *Lock) Lock() error {
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("flock LOCK_EX: %w", err)
	}
	return nil
}

// RLock acquires the shared (reader) lock, blocking until available.
func (l *Lock) RLock() error {
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_SH); err != nil {
		return fmt.Errorf("flock LOCK_SH: %w", err)
	}
	return nil
}

// Unlock releases whichever lock is held and closes the lock file.
func (l *Lock) Unlock() error {
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("flock LOCK_UN: %w", err)
	}
	return l.file.Close()
}
