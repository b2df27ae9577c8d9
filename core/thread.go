package core

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// threadNames holds per-goroutine display-name overrides. Entries live for
// the process lifetime; the map is keyed by goroutine id and only ever
// grows for goroutines that opt in via SetThreadName, so the footprint
// stays proportional to the number of named workers.
var (
	threadNamesMu sync.RWMutex
	threadNames   = make(map[uint64]string)
)

// SetThreadName sets the display name stamped onto records created on the
// calling goroutine. It does not affect records from other goroutines.
func SetThreadName(name string) {
	gid := GoroutineID()
	threadNamesMu.Lock()
	threadNames[gid] = name
	threadNamesMu.Unlock()
}

// ClearThreadName removes the calling goroutine's display-name override.
func ClearThreadName() {
	gid := GoroutineID()
	threadNamesMu.Lock()
	delete(threadNames, gid)
	threadNamesMu.Unlock()
}

// CurrentThreadName returns the display name that NewRecord would stamp on
// a record created on the calling goroutine.
func CurrentThreadName() string {
	return threadName(GoroutineID())
}

func threadName(gid uint64) string {
	threadNamesMu.RLock()
	name, ok := threadNames[gid]
	threadNamesMu.RUnlock()
	if ok {
		return name
	}
	return "goroutine-" + strconv.FormatUint(gid, 10)
}

var goroutinePrefix = []byte("goroutine ")

// GoroutineID parses the numeric id of the calling goroutine from the
// runtime.Stack header. The runtime offers no cheaper supported way to
// identify the calling goroutine, and the header format has been stable
// since Go 1.0.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := buf[:n]
	if !bytes.HasPrefix(s, goroutinePrefix) {
		return 0
	}
	s = s[len(goroutinePrefix):]
	end := bytes.IndexByte(s, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(s[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
