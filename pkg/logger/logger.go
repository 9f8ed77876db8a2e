package logger

import (
	"log/slog"
	"os"
)

var std = slog.Default()

// Init configures the package logger. Production gets JSON output,
// everything else human-readable text at debug level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	std = slog.New(handler)
	slog.SetDefault(std)
}

func Info(msg string, args ...any) {
	std.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	std.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	std.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	std.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass a bare error instead of a key-value
// pair; anything else goes through to slog untouched.
func normalize(args []any) []any {
	out := make([]any, 0, len(args))
	for _, a := range args {
		if err, ok := a.(error); ok {
			out = append(out, slog.Any("error", err))
			continue
		}
		out = append(out, a)
	}
	return out
}
