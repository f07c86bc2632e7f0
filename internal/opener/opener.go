// Package opener hands URLs to an external viewer.
package opener

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Opener opens URLs with a configured command or the platform default
type Opener struct {
	command string   // configured viewer command, empty for system default
	args    []string // extra arguments placed before the URL
	logger  *slog.Logger

	// start launches the process without waiting; swapped in tests
	start func(name string, args ...string) error
}

// New creates an Opener. An empty command uses the system default handler.
func New(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: strings.TrimSpace(command),
		args:    args,
		logger:  logger,
		start:   startDetached,
	}
}

// Open opens url and returns once the viewer process has started
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	name, args := o.commandFor(runtime.GOOS, url)
	o.logger.Info("opening url", "command", name, "args", args)

	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// commandFor resolves the executable and arguments for the given platform
func (o *Opener) commandFor(goos, url string) (string, []string) {
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		return o.command, args
	}

	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}

func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}
