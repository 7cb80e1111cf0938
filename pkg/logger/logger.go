package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Development gets a human
// console writer and debug level; everything else stays JSON at info.
func Init(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Warn records a swallowed best-effort failure (mirroring, cache writes).
func Warn(msg string, err error) {
	log.Warn().Err(err).Msg(msg)
}

// Error records a failure that surfaced to the client as a 5xx.
func Error(msg string, err error) {
	log.Error().Err(err).Msg(msg)
}
