package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// EnsureSetup checks that the todo directory, active file and detail
// directory exist, prompting before creating anything. It runs before the
// terminal enters the alternate screen. A declined prompt returns an error.
func EnsureSetup(file *TaskFile, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	if _, err := os.Stat(file.Dir); os.IsNotExist(err) {
		ok, err := confirmCreation(reader, out, "todo directory", file.Dir)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("creation of %s declined", file.Dir)
		}
		if err := os.MkdirAll(file.Dir, 0755); err != nil {
			return fmt.Errorf("create todo directory: %w", err)
		}
		fmt.Fprintf(out, "Created todo directory: %s\n", file.Dir)
	}

	if _, err := os.Stat(file.TodoPath()); os.IsNotExist(err) {
		ok, err := confirmCreation(reader, out, "todo.txt", file.TodoPath())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("creation of %s declined", file.TodoPath())
		}
		if err := os.WriteFile(file.TodoPath(), nil, 0644); err != nil {
			return fmt.Errorf("create todo.txt: %w", err)
		}
		fmt.Fprintf(out, "Created todo.txt: %s\n", file.TodoPath())
	}

	if err := os.MkdirAll(file.DetailDir(), 0755); err != nil {
		return fmt.Errorf("create detail directory: %w", err)
	}
	return nil
}

func confirmCreation(in *bufio.Reader, out io.Writer, what, path string) (bool, error) {
	fmt.Fprintf(out, "%s does not exist: %s\n", what, path)
	fmt.Fprint(out, "Create it? (y/N): ")
	answer, err := in.ReadString('\n')
	if err != nil && answer == "" {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
