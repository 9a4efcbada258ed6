package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with typed fields and an optional aggregating
// collector that ships error logs to Kafka.
type Logger struct {
	zl        zerolog.Logger
	collector *LogCollector
}

type Config struct {
	Level      string // debug, info, warn, error, fatal, panic
	Format     string // json or console
	Output     string // stdout, stderr, or file path
	TimeFormat string // defaults to RFC3339Nano
}

func New(cfg *Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	switch cfg.Output {
	case "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		output = file
	}

	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339Nano
	}
	zerolog.TimeFieldFormat = cfg.TimeFormat

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: cfg.TimeFormat}
	}

	zl := zerolog.New(output).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &Logger{zl: zl}, nil
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.emit(l.zl.Warn(), msg, fields)
}

// Error also feeds the collector so repeated failures aggregate.
func (l *Logger) Error(msg string, fields ...Field) {
	l.emit(l.zl.Error(), msg, fields)
	l.collect("error", msg, fields)
}

func (l *Logger) emit(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		f.appendTo(event)
	}
	event.Msg(msg)
}

func (l *Logger) collect(level, msg string, fields []Field) {
	if l.collector == nil {
		return
	}

	// caller of Error, two frames up
	caller := "unknown"
	if _, file, line, ok := runtime.Caller(2); ok {
		parts := strings.Split(file, "OddsPull")
		caller = fmt.Sprintf("%s:%d", parts[len(parts)-1], line)
	}

	fieldMap := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		k, v := f.keyValue()
		fieldMap[k] = v
	}
	l.collector.AddLog(level, msg, fieldMap, caller)
}

// AddCollector attaches (or replaces) the aggregating collector.
func (l *Logger) AddCollector(cfg *CollectionConfig) {
	if l.collector != nil {
		l.collector.Close()
	}
	l.collector = NewLogCollector(cfg)
}

// RemoveCollector flushes and detaches the collector.
func (l *Logger) RemoveCollector() {
	if l.collector != nil {
		l.collector.Close()
		l.collector = nil
	}
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
	kindError
	kindAny
)

// Field is one typed key/value pair on a log line.
type Field struct {
	key  string
	kind fieldKind
	str  string
	num  int64
	flag bool
	err  error
	any  interface{}
}

func (f Field) appendTo(event *zerolog.Event) {
	switch f.kind {
	case kindString:
		event.Str(f.key, f.str)
	case kindInt:
		event.Int64(f.key, f.num)
	case kindBool:
		event.Bool(f.key, f.flag)
	case kindError:
		event.Err(f.err)
	case kindAny:
		event.Interface(f.key, f.any)
	}
}

func (f Field) keyValue() (string, interface{}) {
	switch f.kind {
	case kindString:
		return f.key, f.str
	case kindInt:
		return f.key, f.num
	case kindBool:
		return f.key, f.flag
	case kindError:
		if f.err != nil {
			return f.key, f.err.Error()
		}
		return f.key, nil
	default:
		return f.key, f.any
	}
}

func String(key, value string) Field {
	return Field{key: key, kind: kindString, str: value}
}

func Strings(key string, values []string) Field {
	return String(key, strings.Join(values, ", "))
}

func Int(key string, value int) Field {
	return Field{key: key, kind: kindInt, num: int64(value)}
}

func Int64(key string, value int64) Field {
	return Field{key: key, kind: kindInt, num: value}
}

func Bool(key string, value bool) Field {
	return Field{key: key, kind: kindBool, flag: value}
}

func Error(err error) Field {
	return Field{key: "error", kind: kindError, err: err}
}

func Any(key string, value interface{}) Field {
	return Field{key: key, kind: kindAny, any: value}
}

// Duration logs as integer milliseconds.
func Duration(key string, value time.Duration) Field {
	return Field{key: key, kind: kindInt, num: value.Milliseconds()}
}
