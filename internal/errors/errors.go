package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitharbor/internal/habits"
	"github.com/julianstephens/habitharbor/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix.
// Save warnings get a "Warning: " prefix since the change was still applied.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if habits.IsSaveWarning(err) {
		return fmt.Sprintf("Warning: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Warn prints a save warning to stderr and reports whether err was one.
// Commands use it to keep going after a mutation that only failed to persist.
func Warn(err error) bool {
	if !habits.IsSaveWarning(err) {
		return false
	}
	logger.Warn("Change not persisted", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	return true
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
