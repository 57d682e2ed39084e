package main

import (
	"os"
	"strings"

	"extras-cli/internal/cli"
	applog "extras-cli/internal/log"
	"extras-cli/internal/store"

	_ "github.com/joho/godotenv/autoload"
)

func rewriteDirectTodoLookupArgs(argv []string) []string {
	// `extras <todo-id>` works like `extras todos show <todo-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
	// Persistent flags may come first (`extras --dir ... <todo-id>`), so look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without skipping a value, so a todo id is never consumed.
	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(at int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:at]...)
		out = append(out, "todos", "show")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && store.IsTodoID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if store.IsTodoID(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	applog.SetLevel(applog.ParseLevel(os.Getenv("EXTRAS_LOG_LEVEL")))
	os.Args = rewriteDirectTodoLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
