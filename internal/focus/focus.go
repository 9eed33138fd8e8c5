// Package focus toggles the OS-level deep-work environment (macOS Shortcuts)
// and plays the session-complete sound. Everything here is best effort: a
// missing shortcut or sound never blocks the timer.
package focus

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const (
	beginShortcut = "start deep"
	endShortcut   = "stop deep"

	shortcutTimeout = 10 * time.Second
	soundTimeout    = 5 * time.Second
)

// Begin enables the deep-work environment. Failure is reported as a warning
// on stderr and otherwise ignored.
func Begin() {
	runShortcut(beginShortcut)
}

// End disables the deep-work environment. Best effort, like Begin.
func End() {
	runShortcut(endShortcut)
}

func runShortcut(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), shortcutTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "shortcuts", "run", name)
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: focus shortcut %q failed: %v", name, err)
		if len(out) > 0 {
			fmt.Fprintf(os.Stderr, " (%s)", out)
		}
		fmt.Fprintln(os.Stderr)
	}
}

// Notify plays the completion sound, falling back to the terminal bell when
// the system player is unavailable.
func Notify() {
	ctx, cancel := context.WithTimeout(context.Background(), soundTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "afplay", "/System/Library/Sounds/Glass.aiff")
	if err := cmd.Run(); err != nil {
		fmt.Print("\a")
	}
}
