package providers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

type TypeEnum uint8

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

// GetLogTypeByRequestType maps an HTTP method to a log category. Anything
// that is not a POST logs as a read.
func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// LogProvider writes application logs and access logs to separate files
// under the configured directory, optionally mirroring to stderr in debug
// mode.
type LogProvider struct {
	app    zerolog.Logger
	access zerolog.Logger
	files  []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	mode := os.FileMode(conf.Logger.Mode)
	appFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "app.log"), mode)
	if err != nil {
		return nil, err
	}
	accessFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "access.log"), mode)
	if err != nil {
		appFile.Close()
		return nil, err
	}

	appOut := io.Writer(appFile)
	accessOut := io.Writer(accessFile)
	if conf.Debug {
		console := zerolog.ConsoleWriter{Out: os.Stderr}
		appOut = io.MultiWriter(appFile, console)
		accessOut = io.MultiWriter(accessFile, console)
	}

	return &LogProvider{
		app:    zerolog.New(appOut).Level(level).With().Timestamp().Logger(),
		access: zerolog.New(accessOut).Level(level).With().Timestamp().Logger(),
		files:  []*os.File{appFile, accessFile},
	}, nil
}

func openLogFile(path string, mode os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
}

func (l *LogProvider) loggerFor(t TypeEnum) *zerolog.Logger {
	if t == TypeApp {
		return &l.app
	}
	return &l.access
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Error().Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Warn().Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Debug().Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Info().Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Fatal().Msgf(format, args...)
}

func (l *LogProvider) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
}
