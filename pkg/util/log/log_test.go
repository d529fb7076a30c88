// Copyright 2025 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	t.Cleanup(SetOutput(&buf))
	return &buf
}

func TestEntryFormat(t *testing.T) {
	buf := captureOutput(t)
	ctx := logtags.AddTag(context.Background(), "loop", 3)
	ctx = logtags.AddTag(ctx, "warm", nil)

	Warningf(ctx, "cycle %d overran by %s", 7, "2ms")

	line := buf.String()
	require.True(t, strings.HasPrefix(line, "W"), line)
	require.True(t, strings.HasSuffix(line, "[loop=3,warm] cycle 7 overran by 2ms\n"), line)
}

func TestThreshold(t *testing.T) {
	buf := captureOutput(t)
	defer SetThreshold(SeverityInfo)
	SetThreshold(SeverityError)

	ctx := context.Background()
	Infof(ctx, "dropped")
	Warningf(ctx, "dropped")
	Errorf(ctx, "kept")
	require.Equal(t, 1, strings.Count(buf.String(), "\n"))
	require.Contains(t, buf.String(), "kept")
}

func TestRedactable(t *testing.T) {
	buf := captureOutput(t)
	defer SetRedactable(false)
	ctx := context.Background()

	Infof(ctx, "user %s, count %d", "alice", redact.Safe(4))
	require.Contains(t, buf.String(), "user alice, count 4")

	buf.Reset()
	SetRedactable(true)
	Infof(ctx, "user %s, count %d", "alice", redact.Safe(4))
	require.Contains(t, buf.String(), "user ‹alice›, count 4")
}

func TestFatalCallsExitFunc(t *testing.T) {
	buf := captureOutput(t)
	defer ResetExitFunc()
	var code int
	SetExitFunc(func(c int) { code = c })

	Fatalf(context.Background(), "giving up")
	require.Equal(t, 255, code)
	require.True(t, strings.HasPrefix(buf.String(), "F"))
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := logtags.AddTag(context.Background(), "n", 1)
	require.Equal(t, "[n=1] hello world", FormatWithContextTags(ctx, "hello %s", "world"))
	require.Equal(t, "plain", FormatWithContextTags(context.Background(), "plain"))
}

func TestEveryN(t *testing.T) {
	e := Every(0)
	require.True(t, e.ShouldLog())
	require.True(t, e.ShouldLog())
}
