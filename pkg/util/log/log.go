// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log is a small leveled logger. Entries are single lines prefixed
// with the severity, a timestamp and the log tags carried by the context:
//
//	I251018 14:03:05.123456 [loop=1] cycle overran its period by 2ms
//
// Arguments are formatted with redact, so values that are not marked safe are
// enclosed in redaction markers when redactable output is enabled.
package log

import (
	"context"
	"io"
	"os"

	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/syncutil"
)

// Severity is the importance of a log entry.
type Severity int32

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityError
	SeverityFatal
)

var severityChars = [...]byte{
	SeverityInfo:    'I',
	SeverityWarning: 'W',
	SeverityError:   'E',
	SeverityFatal:   'F',
}

func (s Severity) char() byte {
	if s < SeverityInfo || s > SeverityFatal {
		return '?'
	}
	return severityChars[s]
}

var logging struct {
	mu struct {
		syncutil.Mutex
		out          io.Writer
		threshold    Severity
		redactable   bool
		exitOverride func(int)
	}
}

func init() {
	logging.mu.out = os.Stderr
	logging.mu.threshold = SeverityInfo
}

// SetOutput redirects log entries to w and returns a function restoring the
// previous destination.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.out
	logging.mu.out = w
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.out = prev
	}
}

// SetThreshold drops entries less severe than s.
func SetThreshold(s Severity) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.threshold = s
}

// SetRedactable controls whether entries keep their redaction markers.
func SetRedactable(redactable bool) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.redactable = redactable
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, SeverityInfo, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, SeverityWarning, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, SeverityError, format, args)
}

// Fatalf logs to the FATAL severity and then exits the process, or calls the
// function installed with SetExitFunc.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, SeverityFatal, format, args)
	exit(255)
}

func logf(ctx context.Context, sev Severity, format string, args []interface{}) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	if sev < logging.mu.threshold {
		return
	}
	buf := makeEntry(ctx, sev, logging.mu.redactable, format, args)
	// There is nowhere left to report a failed write.
	_, _ = logging.mu.out.Write(buf)
}
