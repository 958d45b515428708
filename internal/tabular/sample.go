package tabular

import (
	"context"
	"fmt"
	"time"
)

// SampleClient serves a deterministic in-memory content-posts dataset. It
// backs the demo dashboard and the tests.
type SampleClient struct{}

const sampleTableID = "tbl1"

var (
	sampleStatuses = []string{"Review", "Reject", "Approved for Publishing", "Posted", "Scheduled for Publishing"}
	sampleAuthors  = []string{"John Doe", "Jane Smith", "Mike Johnson", "Sarah Wilson", "Tom Brown"}
	sampleTitles   = []string{
		"Getting Started with React",
		"Advanced TypeScript Tips",
		"Building Modern UIs",
		"State Management Guide",
		"CSS Grid Mastery",
		"JavaScript Best Practices",
		"Web Performance Optimization",
		"Responsive Design Patterns",
		"API Integration Strategies",
		"Testing React Applications",
		"Modern CSS Techniques",
		"Database Design Principles",
		"Security Best Practices",
		"DevOps for Frontend",
		"Mobile-First Development",
	}
)

// ListTables implements Client.
func (SampleClient) ListTables(ctx context.Context, config Config) ([]Table, error) {
	return []Table{
		{
			ID:   sampleTableID,
			Name: "Content Posts",
			Fields: []Field{
				{ID: "fld1", Name: "Title", Type: "text"},
				{ID: "fld2", Name: "Content", Type: "text"},
				{ID: "fld3", Name: "Status", Type: "select"},
				{ID: "fld4", Name: "Author", Type: "text"},
				{ID: "fld5", Name: "Date", Type: "date"},
				{ID: "fld6", Name: "Views", Type: "number"},
			},
		},
	}, nil
}

// ListRecords implements Client.
func (SampleClient) ListRecords(ctx context.Context, config Config, tableID string) ([]Record, error) {
	if tableID != sampleTableID {
		return nil, nil
	}

	now := time.Now()
	records := make([]Record, len(sampleTitles))
	for i, title := range sampleTitles {
		records[i] = Record{
			ID: fmt.Sprintf("rec%d", i),
			Fields: map[string]any{
				"Title":   title,
				"Content": fmt.Sprintf("This is the content for %s.", title),
				"Status":  sampleStatuses[i%len(sampleStatuses)],
				"Author":  sampleAuthors[i%len(sampleAuthors)],
				"Date":    now.AddDate(0, 0, -i).Format("2006-01-02"),
				"Views":   (i + 1) * 137,
			},
			CreatedTime: now,
		}
	}
	return records, nil
}
