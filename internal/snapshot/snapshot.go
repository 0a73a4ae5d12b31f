// Package snapshot defines the dated text artifact one collection run
// produces, and its append-only on-disk store.
package snapshot

import (
	"fmt"
	"strings"

	"github.com/sdkwatch/sdkwatch/internal/feed"
)

const (
	sectionRule    = "========================================" // 40 chars
	entrySeparator = "--------------------"                     // 20 chars
)

// Snapshot is one immutable collection run, keyed by its collection date.
type Snapshot struct {
	Date     string // YYYY-MM-DD, primary key in the store
	Sections []Section
}

// Section is the outcome for a single source. Exactly one of Entries and
// FetchErr is populated: a source either fully succeeds or is recorded as
// failed, partial success is not modeled.
type Section struct {
	SourceTitle string
	Entries     []feed.Entry
	FetchErr    string
}

// Failed reports whether the section records a fetch failure.
func (s Section) Failed() bool {
	return s.FetchErr != ""
}

// Render serializes the snapshot into its text document form. The format is
// write-only: readers treat the document as an opaque blob to hand to the
// completion service, nothing re-parses it.
func (s *Snapshot) Render() string {
	var sb strings.Builder

	for _, sec := range s.Sections {
		sb.WriteString("\n" + sectionRule + "\n")
		sb.WriteString(fmt.Sprintf("Source: %s\n", sec.SourceTitle))
		sb.WriteString(sectionRule + "\n\n")

		if sec.Failed() {
			sb.WriteString(fmt.Sprintf("Error reading source: %s\n", sec.FetchErr))
			continue
		}

		for _, e := range sec.Entries {
			sb.WriteString(fmt.Sprintf("* [%s] %s\n", e.Date, e.Title))
			sb.WriteString(fmt.Sprintf("Link: %s\n", e.Link))
			sb.WriteString(fmt.Sprintf("Detail: %s\n", e.Excerpt))
			sb.WriteString(entrySeparator + "\n")
		}
	}

	return sb.String()
}
