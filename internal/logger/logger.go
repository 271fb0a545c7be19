package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func New() zerolog.Logger {
	return NewWithWriter(os.Stderr, zerolog.DebugLevel)
}

// NewWithWriter is New with an explicit sink; CLI output goes to stdout so
// logs are kept on stderr.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger.Level(level)
}

// ApplyLevel sets the process-wide minimum level once config is known.
func ApplyLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
