package tui

import (
	"os"
	"os/exec"
	"strings"
	"unicode"

	"extras-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// editorDoneMsg reports that the external editor exited. path holds the
// edited description and is removed once read.
type editorDoneMsg struct {
	todoID string
	path   string
	before string
	err    error
}

// editorArgs is $VISUAL, then $EDITOR, then vi, split into argv.
func editorArgs() []string {
	for _, k := range []string{"VISUAL", "EDITOR"} {
		if args := splitShellWords(os.Getenv(k)); len(args) > 0 {
			return args
		}
	}
	return []string{"vi"}
}

// editDescription suspends the TUI and opens the todo's description in the
// user's editor.
func (m appModel) editDescription(todoID, description string) (tea.Cmd, error) {
	f, err := os.CreateTemp("", "extras-desc-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(description); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	args := editorArgs()
	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{todoID: todoID, path: path, before: description, err: err}
	}), nil
}

// applyEditorResult saves the edited description when it changed.
func (m appModel) applyEditorResult(msg editorDoneMsg) (appModel, tea.Cmd) {
	defer func() { _ = os.Remove(msg.path) }()
	if msg.err != nil {
		m.status = "editor failed: " + msg.err.Error()
		return m, nil
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		m.status = "editor read failed: " + err.Error()
		return m, nil
	}
	after := strings.TrimRight(string(b), "\n")
	if strings.TrimSpace(after) == strings.TrimSpace(msg.before) {
		m.status = "no changes from " + editorArgs()[0]
		return m, nil
	}
	return m, m.patchTodo(msg.todoID, model.TodoPatch{Description: &after}, "updated description of")
}

// splitShellWords splits a command line into argv. Single and double quotes
// group words; a backslash escapes the next rune outside single quotes.
func splitShellWords(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote, inWord = r, true
		case quote == 0 && unicode.IsSpace(r):
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out
}
