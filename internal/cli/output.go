package cli

import (
	"fmt"

	"github.com/fatih/color"
)

// Color setup for terminal output
var (
	infoColor      = color.New(color.FgCyan).SprintFunc()
	successColor   = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor     = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor      = color.New(color.FgYellow).SprintFunc()
	highlightColor = color.New(color.FgMagenta, color.Bold).SprintFunc()
)

// Info prints an info message with color
func Info(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoColor("[INFO]:"), fmt.Sprintf(format, args...))
}

// Success prints a success message with color
func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successColor("[SUCCESS]:"), fmt.Sprintf(format, args...))
}

// Error prints an error message with color
func Error(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", errorColor("[ERROR]:"), fmt.Sprintf(format, args...))
}

// Warn prints a warning message with color
func Warn(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warnColor("[WARNING]:"), fmt.Sprintf(format, args...))
}

// Highlight returns a highlighted string
func Highlight(s string) string {
	return highlightColor(s)
}
