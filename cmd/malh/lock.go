package main

import "github.com/multiattr/malh/storage"

// withLock acquires an advisory flock on name's lock file for the duration
// of fn, honoring the "the engine does not lock; enforcement is the
// caller's responsibility" contract by doing the locking here, in the CLI,
// rather than inside package relation. In-memory relations have no file to
// lock and run fn directly.
func withLock(name string, exclusive bool, fn func() error) error {
	if memoryFlag {
		return fn()
	}
	lock, err := storage.OpenLock(name)
	if err != nil {
		return err
	}
	if exclusive {
		err = lock.Lock()
	} else {
		err = lock.RLock()
	}
	if err != nil {
		return err
	}
	defer lock.Unlock()
	return fn()
}
