package logger

import (
	"sync"
	"sync/atomic"
)

// DefaultAsyncBuffer is how many pending messages the async sink holds before dropping.
const DefaultAsyncBuffer = 256

type asyncRecord struct {
	level  string
	format string
	args   []interface{}
}

// Async forwards messages to another Logger from a background goroutine.
// Calls never block: when the buffer is full the message is dropped and counted.
type Async struct {
	next    Logger
	records chan asyncRecord
	dropped atomic.Uint64
	done    chan struct{}
	once    sync.Once

	// closeMu guards sends against a concurrent Close.
	closeMu sync.RWMutex
	closed  bool
}

// NewAsync starts the drain goroutine. Call Close to flush and stop it.
func NewAsync(next Logger, buffer int) *Async {
	if buffer <= 0 {
		buffer = DefaultAsyncBuffer
	}
	a := &Async{
		next:    next,
		records: make(chan asyncRecord, buffer),
		done:    make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *Async) drain() {
	defer close(a.done)
	for r := range a.records {
		switch r.level {
		case "debug":
			a.next.Debug(r.format, r.args...)
		case "info":
			a.next.Info(r.format, r.args...)
		case "warn":
			a.next.Warn(r.format, r.args...)
		default:
			a.next.Error(r.format, r.args...)
		}
	}
}

func (a *Async) send(level, format string, args []interface{}) {
	a.closeMu.RLock()
	defer a.closeMu.RUnlock()
	if a.closed {
		a.dropped.Add(1)
		return
	}
	select {
	case a.records <- asyncRecord{level: level, format: format, args: args}:
	default:
		a.dropped.Add(1)
	}
}

func (a *Async) Debug(format string, args ...interface{}) { a.send("debug", format, args) }
func (a *Async) Info(format string, args ...interface{})  { a.send("info", format, args) }
func (a *Async) Warn(format string, args ...interface{})  { a.send("warn", format, args) }
func (a *Async) Error(format string, args ...interface{}) { a.send("error", format, args) }

// Dropped returns how many messages were discarded because the buffer was full.
func (a *Async) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops accepting messages and waits for the pending ones to be written.
func (a *Async) Close() {
	a.once.Do(func() {
		a.closeMu.Lock()
		a.closed = true
		close(a.records)
		a.closeMu.Unlock()
		<-a.done
		if n := a.dropped.Load(); n > 0 {
			a.next.Warn("log sink dropped %d messages", n)
		}
	})
}
