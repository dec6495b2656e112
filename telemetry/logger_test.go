package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) Logger {
	base := logrus.New()
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetOutput(buf)

	return New(base)
}

func decodeLastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	return out
}

func TestIterationLogsMergeFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Iteration(3, "A", "B", "C", 0.91)

	fields := decodeLastLine(t, &buf)
	require.Equal(t, "merged tiles", fields["msg"])
	require.EqualValues(t, 3, fields["iteration"])
	require.Equal(t, "A", fields["merged_a"])
	require.Equal(t, "B", fields["merged_b"])
	require.Equal(t, "C", fields["new_tile"])
	require.InDelta(t, 0.91, fields["r_squared"], 1e-9)
}

func TestTerminatedLogsReasonAndCounts(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Terminated("desired tile count reached", 12, 4)

	fields := decodeLastLine(t, &buf)
	require.Equal(t, "merge loop terminated", fields["msg"])
	require.Equal(t, "desired tile count reached", fields["reason"])
	require.EqualValues(t, 12, fields["iterations"])
	require.EqualValues(t, 4, fields["tile_count"])
}

func TestNewWithNilFallsBackToStandardLogger(t *testing.T) {
	l := New(nil)
	require.NotNil(t, l.entry)
}

func TestWarnLogsEdgeEndpoints(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Warn("gated for insufficient sales", "X", "Y")

	fields := decodeLastLine(t, &buf)
	require.Equal(t, "gated for insufficient sales", fields["msg"])
	require.Equal(t, "X", fields["a"])
	require.Equal(t, "Y", fields["b"])
	require.Equal(t, "warning", fields["level"])
}
