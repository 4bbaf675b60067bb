package cmd

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/russross/blackfriday/v2"

	"github.com/maedana/torudo/internal"
)

const defaultHTTPAddr = "127.0.0.1:7676"

//go:embed templates/*
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"markdown": func(text string) template.HTML {
		return template.HTML(blackfriday.Run([]byte(text)))
	},
	"projectColor": internal.ProjectColorHex,
	"formatDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
}).ParseFS(templatesFS, "templates/*.html"))

// HttpdCommand serves a read-only HTML view of the board plus a small JSON
// API. Writes still go through the TUI or the text files themselves.
func HttpdCommand(dir, addr string) error {
	if addr == "" {
		addr = defaultHTTPAddr
	}
	file := internal.NewTaskFile(dir)
	fmt.Printf("Listening on http://%s (dir: %s)\n", addr, dir)
	return http.ListenAndServe(addr, newRouter(file))
}

func newRouter(file *internal.TaskFile) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Get("/", handleBoard(file))
	r.Get("/tasks/{id}", handleTaskDetail(file))
	r.Get("/api/tasks", handleAPITasks(file))
	r.Get("/api/projects", handleAPIProjects(file))
	return r
}

func handleBoard(file *internal.TaskFile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := file.Load()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data := struct {
			Buckets []internal.ProjectBucket
		}{internal.BuildProjectIndex(tasks)}
		if err := templates.ExecuteTemplate(w, "board.html", data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func handleTaskDetail(file *internal.TaskFile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tasks, err := file.Load()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, task := range tasks {
			if task.ID != id {
				continue
			}
			// Missing detail files are normal; the page just has no note.
			detail, _ := os.ReadFile(file.DetailPath(id))
			data := struct {
				Task   internal.Task
				Detail string
			}{task, string(detail)}
			if err := templates.ExecuteTemplate(w, "task.html", data); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.NotFound(w, r)
	}
}

func handleAPITasks(file *internal.TaskFile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := file.Load()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, tasks)
	}
}

func handleAPIProjects(file *internal.TaskFile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := file.Load()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		type projectSummary struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		buckets := internal.BuildProjectIndex(tasks)
		summaries := make([]projectSummary, 0, len(buckets))
		for _, bucket := range buckets {
			summaries = append(summaries, projectSummary{bucket.Name, len(bucket.Tasks)})
		}
		writeJSON(w, summaries)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
