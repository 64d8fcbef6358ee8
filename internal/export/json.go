// Package export writes the task list and completion history to CSV or
// JSON files for use outside the app.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"prodflow/internal/tracker"
)

type jsonExport struct {
	ExportedAt string           `json:"exported_at"`
	TaskCount  int              `json:"task_count"`
	Tasks      []jsonTask       `json:"tasks"`
	History    []jsonCompletion `json:"completion_history"`
}

type jsonTask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

type jsonCompletion struct {
	Date     string `json:"date"`
	Category string `json:"category"`
}

func ToJSON(tasks []tracker.Task, history []tracker.Completion, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		TaskCount:  len(tasks),
	}

	for _, task := range tasks {
		out.Tasks = append(out.Tasks, jsonTask{
			ID:        task.ID,
			Title:     task.Title,
			Category:  string(task.Category),
			Priority:  string(task.Priority),
			Completed: task.Completed,
			CreatedAt: task.CreatedAt.Local().Format(time.RFC3339),
		})
	}
	for _, c := range history {
		out.History = append(out.History, jsonCompletion{
			Date:     c.Date.Local().Format(time.RFC3339),
			Category: string(c.Category),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
