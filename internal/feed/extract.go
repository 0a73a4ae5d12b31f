package feed

import "github.com/mmcdole/gofeed"

// Entry is one normalized feed item. The excerpt is plain text, already
// stripped of markup and capped in length.
type Entry struct {
	Date    string `json:"date"` // calendar-date prefix, may be empty
	Title   string `json:"title"`
	Link    string `json:"link"`
	Excerpt string `json:"excerpt"`
}

// Extract converts up to maxEntries items from a parsed feed into Entry
// values, preserving feed order. Feeds are assumed already
// reverse-chronological, so no re-sorting happens here.
//
// Dates prefer the "updated" timestamp over "published" and keep only the
// first 10 characters (the YYYY-MM-DD prefix of both RSS and Atom stamps).
// Malformed upstream timestamps pass through verbatim. Bodies prefer a
// structured content element (GitHub Atom feeds put the payload there) and
// fall back to the summary field.
func Extract(parsed *gofeed.Feed, maxEntries, excerptLen int) []Entry {
	n := len(parsed.Items)
	if n > maxEntries {
		n = maxEntries
	}

	entries := make([]Entry, 0, n)
	for _, item := range parsed.Items[:n] {
		date := item.Updated
		if date == "" {
			date = item.Published
		}
		if runes := []rune(date); len(runes) > 10 {
			date = string(runes[:10])
		}

		title := item.Title
		if title == "" {
			title = "No Title"
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		entries = append(entries, Entry{
			Date:    date,
			Title:   title,
			Link:    item.Link,
			Excerpt: Normalize(content, excerptLen),
		})
	}
	return entries
}
