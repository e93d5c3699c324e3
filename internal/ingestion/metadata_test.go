package ingestion

import "testing"

func TestInferMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		title   string
		docType string
	}{
		{
			name:    "pdf with underscores",
			path:    "/docs/employee_handbook_2026.pdf",
			title:   "employee handbook 2026",
			docType: "pdf",
		},
		{
			name:    "pdf with dashes",
			path:    "annual-report.pdf",
			title:   "annual report",
			docType: "pdf",
		},
		{
			name:    "markdown",
			path:    "/notes/design-notes.md",
			title:   "design notes",
			docType: "markdown",
		},
		{
			name:    "plain text",
			path:    "minutes.txt",
			title:   "minutes",
			docType: "text",
		},
		{
			name:    "mixed separators collapse",
			path:    "a__b--c.pdf",
			title:   "a b c",
			docType: "pdf",
		},
		{
			name:    "uppercase extension",
			path:    "REPORT.PDF",
			title:   "REPORT",
			docType: "pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := InferMetadata(tt.path)
			if got.Title != tt.title {
				t.Errorf("title: got %q, want %q", got.Title, tt.title)
			}
			if got.DocType != tt.docType {
				t.Errorf("doc type: got %q, want %q", got.DocType, tt.docType)
			}
		})
	}
}
