package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/export"
)

// draftTemplate is the starting content of the editor buffer.
const draftTemplate = `# One entry per task. Lines starting with # are ignored.
# Leave the file without entries to add nothing.
#
# - task: Buy milk
#   due: tomorrow 09:00
# - task: Renew passport
#   due: in 2 weeks
`

// getEditor returns the user's preferred editor from environment variables.
// It checks EDITOR, then VISUAL, and defaults to vi if neither is set.
func getEditor() string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}
	return editor
}

// openEditor opens the specified file in the user's editor.
// It returns an error if the editor cannot be started or exits with a non-zero status.
func openEditor(filePath string) error {
	editor := getEditor()

	cmd := exec.Command(editor, filePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}

	return nil
}

// editDrafts lets the user write task drafts as YAML in their editor.
func editDrafts() ([]domain.TaskDraft, error) {
	f, err := os.CreateTemp("", "duelist-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("create draft file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	_, err = f.WriteString(draftTemplate)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("write draft file: %w", err)
	}

	if err := openEditor(path); err != nil {
		return nil, err
	}

	edited, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open draft file: %w", err)
	}
	defer func() { _ = edited.Close() }()

	return export.ReadYAML(edited)
}
