package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker reports whether Debug and Info lines should be written
type VerboseChecker interface {
	IsVerbose() bool
}

// Level is the severity printed on each line
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (lv Level) String() string {
	switch lv {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// Logger writes "[time] LEVEL [component] message [k=v ...]" lines. Debug and
// Info are gated on the verbose checker; Warn and Error are always written.
type Logger struct {
	component string
	fields    []Field
	verbose   VerboseChecker
	sink      *sink
	now       func() time.Time
}

// sink is shared by a logger and everything derived from it
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

// Field is a key/value pair appended to a line
type Field struct {
	Key   string
	Value interface{}
}

// New creates a logger on stderr
func New(component string, verbose VerboseChecker) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		sink:      &sink{w: os.Stderr},
		now:       time.Now,
	}
}

// NewWithCallback creates a logger on stderr whose verbosity is read from verboseCheck on every call
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, verboseFunc(verboseCheck))
}

// NewWithWriter is NewWithCallback writing to w
func NewWithWriter(component string, w io.Writer, verboseCheck func() bool) *Logger {
	l := NewWithCallback(component, verboseCheck)
	l.sink.w = w
	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithWriter("", io.Discard, nil)
}

// WithComponent returns a logger tagged with component that shares l's writer and bound fields
func (l *Logger) WithComponent(component string) *Logger {
	child := *l
	child.component = component
	return &child
}

// With returns a logger that appends fields to every line
func (l *Logger) With(fields ...Field) *Logger {
	child := *l
	child.fields = append(append([]Field(nil), l.fields...), fields...)
	return &child
}

// SetWriter redirects l and every logger derived from it
func (l *Logger) SetWriter(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.w = w
}

type verboseFunc func() bool

func (f verboseFunc) IsVerbose() bool {
	return f != nil && f()
}

// Enabled reports whether a line at lv would be written
func (l *Logger) Enabled(lv Level) bool {
	if lv >= LevelWarn {
		return true
	}
	return l.verbose != nil && l.verbose.IsVerbose()
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, nil, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, nil, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, nil, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, nil, args) }

func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(LevelDebug, msg, fields, args)
}

func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(LevelInfo, msg, fields, args)
}

func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(LevelWarn, msg, fields, args)
}

func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(LevelError, msg, fields, args)
}

func (l *Logger) log(lv Level, msg string, fields []Field, args []interface{}) {
	if !l.Enabled(lv) {
		return
	}

	// msg is only a format string when there is something to format
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] %s", l.now().Format("15:04:05.000"), lv, component, msg)
	if all := append(append([]Field(nil), l.fields...), fields...); len(all) > 0 {
		b.WriteString(" [")
		for i, f := range all {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%v", f.Key, f.Value)
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	// nowhere to report a failed log write
	_, _ = io.WriteString(l.sink.w, b.String())
}

// F builds an arbitrary field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

// Path names a file or directory
func Path(p string) Field {
	return Field{Key: "path", Value: p}
}
