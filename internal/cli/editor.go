package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// openEditorFunc opens a config file for editing. Tests replace it.
var openEditorFunc = openEditor

// editorCommand builds the argv for editing path. $VISUAL wins over $EDITOR
// and either may carry flags, as in "code --wait". Falls back to vi.
func editorCommand(path string) []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return append(fields, path)
		}
	}
	return []string{"vi", path}
}

// openEditor runs the user's editor on path attached to the terminal and
// waits for it to exit.
func openEditor(path string) error {
	argv := editorCommand(path)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("edit %s with %s: %w", path, argv[0], err)
	}
	return nil
}
