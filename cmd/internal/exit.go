package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
)

// Fatal will emit the message in red and os.Exit with code 1.
func Fatal(msg string, args ...any) {
	_, _ = errColor.Fprint(os.Stderr, format(msg, args...))
	os.Exit(1)
}

// Warn will emit the message in yellow to stderr.
func Warn(msg string, args ...any) {
	_, _ = warnColor.Fprint(os.Stderr, format(msg, args...))
}

// Echo will emit the given message without any logging formatting.
func Echo(msg string, args ...any) {
	EchoTo(os.Stderr, msg, args...)
}

// EchoTo is like Echo, but writes to w.
func EchoTo(w io.Writer, msg string, args ...any) {
	_, _ = fmt.Fprint(w, format(msg, args...))
}

func format(msg string, args ...any) string {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
