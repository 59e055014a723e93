package logger

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap with an in-memory copy of everything written, so the
// demo page can show the log of a build next to the diagram.
type ZapLogger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
	Logs   []string
}

// New returns a logger writing colourised console lines into a buffer.
func New(level zapcore.Level) *ZapLogger {
	logBuf := &bytes.Buffer{}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(logBuf), level),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return &ZapLogger{
		log:    logger,
		logBuf: logBuf,
	}
}

// NewNop discards everything. Library types fall back to it when no logger
// is configured.
func NewNop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop()}
}

// Wrap adapts an existing zap logger (tests use zaptest/observer cores).
func Wrap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{log: l.WithOptions(zap.AddCallerSkip(1))}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(colorLevel(level))
}

func colorLevel(level zapcore.Level) string {
	s := level.String()
	switch level {
	case zapcore.DebugLevel:
		return aurora.Cyan(s).String()
	case zapcore.InfoLevel:
		return aurora.Green(s).String()
	case zapcore.WarnLevel:
		return aurora.Yellow(s).String()
	case zapcore.ErrorLevel:
		return aurora.Red(s).String()
	}
	return s
}

var ansiCode = regexp.MustCompile(`\x1b\[(\d+)m`)

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	open := false

	result.WriteString("<pre>")

	for _, match := range ansiCode.FindAllStringSubmatchIndex(input, -1) {
		start, end := match[0], match[1]
		if start > lastIndex {
			result.WriteString(input[lastIndex:start])
		}

		code := input[match[2]:match[3]]
		if open {
			result.WriteString("</span>")
			open = false
		}
		if color, ok := colorMap[code]; ok {
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(input[lastIndex:])
	}
	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")

	return result.String()
}

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// UpdateLogs renders the buffered log as HTML into Logs.
func (z *ZapLogger) UpdateLogs() {
	if z.logBuf == nil {
		return
	}
	z.Logs = []string{ansiToHTML(z.logBuf.String())}
}

func (z *ZapLogger) ClearLogs() {
	if z.logBuf != nil {
		z.logBuf.Reset()
	}
	z.Logs = nil
}

// Raw returns the buffered log without HTML conversion.
func (z *ZapLogger) Raw() string {
	if z.logBuf == nil {
		return ""
	}
	return z.logBuf.String()
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	z.log.Fatal(wrappedMsg, fields...)
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}
