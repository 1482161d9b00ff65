package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It writes to stderr until Init is called.
var Log = newLogger(os.Stderr, logrus.InfoLevel)

// logFile is the file opened by the last Init, if any.
var logFile *os.File

// LineFormatter renders entries as "[TIME] [LEVL] [file:line] msg".
type LineFormatter struct{}

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileLine = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] [%s] %s", entry.Time.Format("2006-01-02 15:04:05"), level, fileLine, entry.Message)
	for k, v := range entry.Data {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// Init configures Log. Unknown levels fall back to info. When filePath is set
// entries are written to both stderr and the file.
func Init(levelStr, filePath string) error {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	writers := []io.Writer{os.Stderr}
	var file *os.File
	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	Log = newLogger(io.MultiWriter(writers...), level)
	prev := logFile
	logFile = file
	if prev != nil {
		return prev.Close()
	}
	return nil
}

// Close closes the log file opened by Init and sends Log back to stderr.
func Close() error {
	if logFile == nil {
		return nil
	}
	Log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(&LineFormatter{})
	l.SetOutput(out)
	l.SetLevel(level)
	return l
}
