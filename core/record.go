package core

import (
	"os"
	"path/filepath"
	"time"
)

// processStart anchors RelativeCreated, mirroring the import time of the
// host logging module.
var processStart = time.Now()

var (
	processID   = os.Getpid()
	processName = filepath.Base(os.Args[0])
)

// Record is the immutable snapshot of one log event. Field names and JSON
// tags follow the LogRecord attribute names of Python's logging module so
// that network handlers emit payloads existing collectors understand.
//
// Location fields (PathName, FileName, Module, LineNo, FuncName) are left
// empty by NewRecord; resolving the call site costs a runtime.Caller walk
// and is opt-in via WithCaller.
type Record struct {
	Name            string         `json:"name"`
	LevelNo         Level          `json:"levelno"`
	LevelName       string         `json:"levelname"`
	PathName        string         `json:"pathname"`
	FileName        string         `json:"filename"`
	Module          string         `json:"module"`
	LineNo          int            `json:"lineno"`
	FuncName        string         `json:"funcName"`
	Created         float64        `json:"created"`
	Msecs           float64        `json:"msecs"`
	RelativeCreated float64        `json:"relativeCreated"`
	Thread          uint64         `json:"thread"`
	ThreadName      string         `json:"threadName"`
	ProcessName     string         `json:"processName"`
	Process         int            `json:"process"`
	Message         string         `json:"msg"`
	ExcText         string         `json:"exc_text,omitempty"`
	StackInfo       string         `json:"stack_info,omitempty"`
	TaskName        string         `json:"taskName,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// NewRecord builds a Record from the message plus ambient clock, goroutine
// and process state. It performs no I/O and never blocks. extra may be nil;
// when non-nil the map is owned by the record and must not be mutated by
// the caller afterwards.
func NewRecord(name string, level Level, msg string, extra map[string]any) *Record {
	now := time.Now()
	created := float64(now.UnixNano()) / 1e9
	gid := GoroutineID()

	return &Record{
		Name:            name,
		LevelNo:         level,
		LevelName:       level.String(),
		Created:         created,
		Msecs:           float64(now.Nanosecond() / 1e6),
		RelativeCreated: float64(now.Sub(processStart)) / float64(time.Millisecond),
		Thread:          gid,
		ThreadName:      threadName(gid),
		ProcessName:     processName,
		Process:         processID,
		Message:         msg,
		Extra:           extra,
	}
}

// WithCaller returns a copy of the record with the source-location fields
// filled in. The receiver is left untouched.
func (r *Record) WithCaller(pathname string, line int, funcName string) *Record {
	clone := *r
	clone.PathName = pathname
	clone.FileName = filepath.Base(pathname)
	ext := filepath.Ext(clone.FileName)
	clone.Module = clone.FileName[:len(clone.FileName)-len(ext)]
	clone.LineNo = line
	clone.FuncName = funcName
	return &clone
}
