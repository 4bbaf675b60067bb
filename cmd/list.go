package cmd

import (
	"fmt"
	"io"

	"github.com/maedana/torudo/internal"
)

// ListCommand prints the active tasks grouped per project bucket in board
// order. An empty projectFilter lists everything.
func ListCommand(w io.Writer, dir, projectFilter string) error {
	file := internal.NewTaskFile(dir)
	tasks, err := file.Load()
	if err != nil {
		return err
	}

	buckets := internal.BuildProjectIndex(tasks)
	shown := 0
	for _, bucket := range buckets {
		if projectFilter != "" && bucket.Name != projectFilter {
			continue
		}
		if shown > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", bucket.Name, len(bucket.Tasks))
		for _, task := range bucket.Tasks {
			marker := "   "
			if task.Priority != "" {
				marker = "(" + task.Priority + ")"
			}
			fmt.Fprintf(w, "  %s %s\n", marker, task.Title)
		}
		shown++
	}

	if shown == 0 {
		if projectFilter != "" {
			fmt.Fprintf(w, "No tasks for project +%s\n", projectFilter)
		} else {
			fmt.Fprintln(w, "No tasks.")
		}
	}
	return nil
}
