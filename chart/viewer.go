package chart

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// viewerCommand is swapped in tests.
var viewerCommand = func(ctx context.Context, path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", "-W", path)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.CommandContext(ctx, "xdg-open", path)
	}
}

// Open shows a rendered chart with the platform viewer and waits for the
// launcher to exit. On macOS (`open -W`) that is when the viewer window
// closes; xdg-open and rundll32 return as soon as the file is handed off.
// Use OpenWith and a viewer such as eog or feh to block on Linux.
func Open(ctx context.Context, path string) error {
	return run(viewerCommand(ctx, path))
}

// OpenWith runs command with path appended as the last argument and waits
// for it to exit; an empty command falls back to Open.
func OpenWith(ctx context.Context, command []string, path string) error {
	if len(command) == 0 {
		return Open(ctx, path)
	}
	args := append(append([]string{}, command[1:]...), path)
	return run(exec.CommandContext(ctx, command[0], args...))
}

func run(cmd *exec.Cmd) error {
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("open viewer %s: %w (%s)", cmd.Path, err, out)
	}
	return nil
}
