package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level    slog.Level
	messages []string
	err      error
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.messages = append(h.messages, record.Message)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func record(level slog.Level, msg string) slog.Record {
	return slog.NewRecord(time.Now(), level, msg, 0)
}

func TestMultiHandlerRespectsSinkLevels(t *testing.T) {
	info := &recordingHandler{level: slog.LevelInfo}
	errorsOnly := &recordingHandler{level: slog.LevelError}
	m := NewMultiHandler(info, errorsOnly)

	require.NoError(t, m.Handle(context.Background(), record(slog.LevelInfo, "routine")))
	require.NoError(t, m.Handle(context.Background(), record(slog.LevelError, "broken")))

	require.Equal(t, []string{"routine", "broken"}, info.messages)
	require.Equal(t, []string{"broken"}, errorsOnly.messages)
}

func TestMultiHandlerDeliversPastFailingSink(t *testing.T) {
	sinkErr := errors.New("sink down")
	failing := &recordingHandler{level: slog.LevelInfo, err: sinkErr}
	healthy := &recordingHandler{level: slog.LevelInfo}
	m := NewMultiHandler(failing, healthy)

	err := m.Handle(context.Background(), record(slog.LevelInfo, "still delivered"))
	require.ErrorIs(t, err, sinkErr)
	require.Equal(t, []string{"still delivered"}, healthy.messages)
}

func TestMultiHandlerEnabled(t *testing.T) {
	m := NewMultiHandler(&recordingHandler{level: slog.LevelError})
	require.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, m.Enabled(context.Background(), slog.LevelError))
}
