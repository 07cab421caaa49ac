package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for file logging.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// ErrInvalidFormat is returned for a log format other than json or console.
var ErrInvalidFormat = errors.New("logging: format must be json or console")

// Options selects level, encoding and sinks of a logger.
type Options struct {
	Level  string
	Format string
	// File, when set, receives a copy of every event with size-based
	// rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger writing to console and, if opts.File is set, to a
// rotating file. Every sink is wrapped in a FilteringWriter. The returned
// closer releases the file and is never nil.
func New(opts Options, console io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var out io.Writer
	switch strings.ToLower(opts.Format) {
	case "", "json":
		out = NewFilteringWriter(console)
	case "console":
		out = zerolog.ConsoleWriter{Out: NewFilteringWriter(console), NoColor: true}
	default:
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("%w: %q", ErrInvalidFormat, opts.Format)
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file, err := newFileWriter(opts)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		out = zerolog.MultiLevelWriter(out, file)
		closer = file
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

func newFileWriter(opts Options) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    orDefault(opts.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: orDefault(opts.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(opts.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   true,
	}
	return &filteringWriteCloser{filter: NewFilteringWriter(lj), closer: lj}, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	defaultLogger.Store(&nop)
}

// SetDefault replaces the process-wide logger used by code that has no
// logger injected, such as the foreign-call entry points.
func SetDefault(l zerolog.Logger) {
	defaultLogger.Store(&l)
}

// Default returns the process-wide logger. It discards everything until
// SetDefault is called.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}
