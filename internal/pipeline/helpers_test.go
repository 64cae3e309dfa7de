package pipeline

import (
	"io"
	"log/slog"
)

func slogText(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}
