package internal

import "sort"

// ProjectBucket is the ordered task list for one project column.
type ProjectBucket struct {
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// BuildProjectIndex groups the active tasks into per-project buckets.
// A task appears in every bucket its tags name (fan-out, not partition);
// tasks without tags land in the NoProject bucket. Buckets are ordered by
// first appearance in the input sequence, and each bucket is sorted by
// priority (A before Z, none last) with input order preserved among equals.
// Completed tasks never enter the index; they live in the archive.
func BuildProjectIndex(tasks []Task) []ProjectBucket {
	var order []string
	byName := make(map[string][]Task)
	add := func(name string, t Task) {
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = append(byName[name], t)
	}

	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if len(t.Projects) == 0 {
			add(NoProject, t)
			continue
		}
		seen := make(map[string]bool, len(t.Projects))
		for _, p := range t.Projects {
			if seen[p] {
				continue
			}
			seen[p] = true
			add(p, t)
		}
	}

	buckets := make([]ProjectBucket, 0, len(order))
	for _, name := range order {
		bucket := byName[name]
		sortBucket(bucket)
		buckets = append(buckets, ProjectBucket{Name: name, Tasks: bucket})
	}
	return buckets
}

// sortBucket orders by priority only. The input arrives in file order, so
// stability gives ascending line numbers among tasks of equal priority.
func sortBucket(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].Priority, tasks[j].Priority
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
}

// FindTask locates a task by identifier, returning its (column, row)
// position. preferColumn is checked first so that a task living in several
// buckets resolves to the column the cursor was on.
func FindTask(buckets []ProjectBucket, id string, preferColumn int) (col, row int, ok bool) {
	if id == "" {
		return 0, 0, false
	}
	if preferColumn >= 0 && preferColumn < len(buckets) {
		for r, t := range buckets[preferColumn].Tasks {
			if t.ID == id {
				return preferColumn, r, true
			}
		}
	}
	for c, bucket := range buckets {
		for r, t := range bucket.Tasks {
			if t.ID == id {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}
