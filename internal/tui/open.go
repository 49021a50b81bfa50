package tui

import (
	"os/exec"
	"runtime"
	"xlcompare/internal/logger"
)

// openFolder opens a directory in the platform file manager. Failures are
// logged and otherwise ignored; this is a convenience action only.
func openFolder(dir string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", dir)
	case "darwin":
		cmd = exec.Command("open", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("Failed to open report folder", "dir", dir, "error", err)
	}
}
