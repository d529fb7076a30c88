// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/ihmcrobotics/ihmc-commons-sub000/pkg/util/timeutil"
)

// entryTimeFormat renders timestamps as yymmdd hh:mm:ss.uuuuuu.
const entryTimeFormat = "060102 15:04:05.000000"

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, &buf)
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

// formatTags writes the context's log tags as "[k=v,k2] ". Nothing is
// written when the context carries no tags.
func formatTags(ctx context.Context, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return
	}
	buf.WriteByte('[')
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.Value(); v != nil {
			buf.WriteByte('=')
			buf.WriteString(t.ValueStr())
		}
	}
	buf.WriteString("] ")
}

// makeEntry renders one log line, terminated by a newline.
func makeEntry(
	ctx context.Context, sev Severity, redactable bool, format string, args []interface{},
) []byte {
	var buf strings.Builder
	buf.WriteByte(sev.char())
	buf.WriteString(timeutil.Now().Format(entryTimeFormat))
	buf.WriteByte(' ')
	formatTags(ctx, &buf)
	msg := redact.Sprintf(format, args...)
	if redactable {
		buf.WriteString(string(msg))
	} else {
		buf.WriteString(msg.StripMarkers())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}
