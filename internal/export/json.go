package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
	Status    string  `json:"status"`
	CaseRef   string  `json:"case_ref,omitempty"`
	Case      string  `json:"case,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func ToJSON(entries []activity.TimeEntry, cases map[string]*store.Case, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		caseName := ""
		if c, ok := cases[e.CaseRef]; ok {
			caseName = c.Name
		}

		export.Entries = append(export.Entries, jsonEntry{
			ID:        e.ID,
			Date:      e.Date,
			Hours:     e.Hours,
			Status:    string(e.Status),
			CaseRef:   e.CaseRef,
			Case:      caseName,
			CreatedAt: e.CreatedAt.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
