package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"prodflow/internal/tracker"
)

func ToCSV(tasks []tracker.Task, history []tracker.Completion, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Title", "Category", "Priority", "Completed", "Created"}); err != nil {
		return err
	}

	for _, task := range tasks {
		row := []string{
			fmt.Sprintf("%d", task.ID),
			task.Title,
			string(task.Category),
			string(task.Priority),
			fmt.Sprintf("%t", task.Completed),
			task.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	// Completion history follows as a second section so one file carries
	// the full export.
	if err := w.Write([]string{"", "", "", "", "", ""}); err != nil {
		return err
	}
	if err := w.Write([]string{"Completed On", "Category", "", "", "", ""}); err != nil {
		return err
	}
	for _, c := range history {
		row := []string{
			c.Date.Local().Format(time.RFC3339),
			string(c.Category),
			"", "", "", "",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
