package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	jsonHandler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	h := &ContextHandler{Handler: jsonHandler}
	logger := slog.New(h)

	ctx := SetRequestIDInContext(context.Background(), "req-12345")
	logger.ErrorContext(ctx, "test message")

	var record map[string]any
	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)
	require.Equal(t, "test message", record["msg"])
	require.Equal(t, "req-12345", record["request_id"])

	// Without a request id in context no attribute is added.
	buf.Reset()
	logger.ErrorContext(context.Background(), "plain")
	record = map[string]any{}
	err = json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)
	_, found := record["request_id"]
	require.False(t, found)
}
