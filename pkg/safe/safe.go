package safe

import (
	"log/slog"
	"runtime/debug"
	"strings"
)

// Recover must be deferred directly. It logs a recovered panic and hands the
// recovered value to onPanic, if any.
func Recover(component string, onPanic func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	slog.Error("panic recovered",
		slog.Any("recover", r),
		slog.String("component", component),
		slog.String("stack", getStackTrace(3)),
	)
	if onPanic != nil {
		onPanic(r)
	}
}

// getStackTrace returns a formatted stack trace
// skipFrames specifies how many initial frames to skip
func getStackTrace(skipFrames int) string {
	lines := strings.Split(string(debug.Stack()), "\n")

	var formatted []string
	formatted = append(formatted, "Stack trace:")

	startIdx := skipFrames
	if startIdx < len(lines) {
		for i := startIdx; i < len(lines) && i < startIdx+20; i++ {
			line := strings.TrimSpace(lines[i])
			if line != "" {
				formatted = append(formatted, "  "+line)
			}
		}

		if len(lines) > startIdx+20 {
			formatted = append(formatted, "  ... (truncated)")
		}
	}

	return strings.Join(formatted, "\n")
}
