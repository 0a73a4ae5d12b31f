// Package report turns a one-shot impact-report answer into a shareable
// HTML artifact.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sdkwatch/sdkwatch/internal/render"
)

// Builder renders impact reports from model answers
type Builder struct {
	template *template.Template
}

// New creates a new report builder
func New() (*Builder, error) {
	tmpl, err := template.New("report").Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Builder{template: tmpl}, nil
}

// Report is a compiled impact report ready for saving or sending
type Report struct {
	Subject      string
	HTMLBody     string
	PlainBody    string
	SnapshotDate string
	CreatedAt    time.Time
}

// reportData is the template data structure
type reportData struct {
	Title        string
	SnapshotDate string
	Generated    string
	Body         template.HTML
}

// Build wraps the model's report text into an HTML page. The text is
// escaped first and only then run through the link presentation transform,
// so the injected anchors are the sole HTML that survives.
func (b *Builder) Build(snapshotDate, answer string) (*Report, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("no report content to build")
	}

	escaped := template.HTMLEscapeString(answer)
	body := render.RewriteLinks(escaped)

	now := time.Now()
	data := reportData{
		Title:        fmt.Sprintf("SDK Impact Report - %s", snapshotDate),
		SnapshotDate: snapshotDate,
		Generated:    now.Format("Monday, January 2 15:04"),
		Body:         template.HTML(body),
	}

	var htmlBuf bytes.Buffer
	if err := b.template.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return &Report{
		Subject:      fmt.Sprintf("SDK Impact Report - %s", snapshotDate),
		HTMLBody:     htmlBuf.String(),
		PlainBody:    answer,
		SnapshotDate: snapshotDate,
		CreatedAt:    now,
	}, nil
}

// Save writes the report HTML under dir and returns the file path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	name := fmt.Sprintf("report-%s-%s.html", r.SnapshotDate, r.CreatedAt.Format("15-04-05"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(r.HTMLBody), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Latest returns the path to the most recent report in dir.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("no reports found: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no reports found in %s", dir)
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

const defaultTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 720px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; border-radius: 8px; padding: 24px; }
        h1 { color: #c96442; margin-bottom: 5px; }
        .date { color: #666; margin-bottom: 20px; }
        .body { line-height: 1.5; white-space: pre-wrap; }
        a { color: #c96442; }
        .footer { margin-top: 20px; padding-top: 15px; border-top: 1px solid #eee; color: #999; font-size: 12px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <div class="date">Snapshot: {{.SnapshotDate}} · Generated: {{.Generated}}</div>
        <div class="body">{{.Body}}</div>
        <div class="footer">Generated by sdkwatch</div>
    </div>
</body>
</html>`
