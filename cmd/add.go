package cmd

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"

	"github.com/maedana/torudo/internal"
)

// AddCommand appends one task to the active file and creates its detail
// file. Project and context tags are picked straight out of the title.
func AddCommand(dir string, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	created := fs.String("c", "", `Creation date ("2024-01-15", "yesterday", "last monday")`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return fmt.Errorf("add requires a task title")
	}

	when := time.Now()
	if *created != "" {
		parsed, err := parseCreationDate(*created)
		if err != nil {
			return err
		}
		when = parsed
	}

	file := internal.NewTaskFile(dir)
	task := internal.NewTask(title, when)
	if err := file.Append(task); err != nil {
		return err
	}

	fmt.Printf("Added: %s\n", task.Serialize())
	return nil
}

// parseCreationDate tries exact formats before natural language; the
// naturaldate library would otherwise read an ISO date as "now".
func parseCreationDate(input string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006/01/02"} {
		if parsed, err := time.Parse(layout, input); err == nil {
			return parsed, nil
		}
	}
	parsed, err := naturaldate.Parse(input, time.Now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse creation date %q: %w", input, err)
	}
	return parsed, nil
}
