package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/store"
)

func ToCSV(entries []activity.TimeEntry, cases map[string]*store.Case, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Hours", "Status", "Case Ref", "Case", "Created At"}); err != nil {
		return err
	}

	for _, e := range entries {
		caseName := ""
		if c, ok := cases[e.CaseRef]; ok {
			caseName = c.Name
		}

		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.Date,
			fmt.Sprintf("%.2f", e.Hours),
			string(e.Status),
			e.CaseRef,
			caseName,
			e.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
