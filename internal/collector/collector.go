// Package collector runs one collection pass over the configured sources
// and turns the results into a snapshot document.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/sdkwatch/sdkwatch/internal/config"
	"github.com/sdkwatch/sdkwatch/internal/feed"
	"github.com/sdkwatch/sdkwatch/internal/snapshot"
)

// Parser fetches and parses one feed URL. It exists so tests can stand in
// for the network.
type Parser interface {
	Parse(ctx context.Context, url string) (*gofeed.Feed, error)
}

type gofeedParser struct {
	parser *gofeed.Parser
}

func (g *gofeedParser) Parse(ctx context.Context, url string) (*gofeed.Feed, error) {
	return g.parser.ParseURLWithContext(url, ctx)
}

// Collector fetches every configured source and assembles a Snapshot.
type Collector struct {
	parser     Parser
	maxEntries int
	excerptLen int
	timeout    time.Duration
	logger     *slog.Logger
}

// New returns a Collector backed by a real gofeed parser.
func New(cfg config.CollectConfig, logger *slog.Logger) *Collector {
	return NewWithParser(&gofeedParser{parser: gofeed.NewParser()}, cfg, logger)
}

// NewWithParser returns a Collector using the given Parser.
func NewWithParser(p Parser, cfg config.CollectConfig, logger *slog.Logger) *Collector {
	return &Collector{
		parser:     p,
		maxEntries: cfg.MaxEntries,
		excerptLen: cfg.ExcerptLength,
		timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:     logger,
	}
}

// Run fetches every source and returns the snapshot for the given
// collection date. Sources are fetched concurrently with a per-source
// timeout; each result is slotted by source index so the emitted sections
// always follow source-list order regardless of completion order.
//
// A source failure never aborts the run: the failed source is recorded as a
// section carrying the error message and the remaining sources proceed.
// Run itself therefore never returns an error.
func (c *Collector) Run(ctx context.Context, sources []config.Source, date string) *snapshot.Snapshot {
	c.logger.Info("collection starting", "date", date, "sources", len(sources))

	sections := make([]snapshot.Section, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			sections[i] = c.fetchSection(ctx, src)
			return nil
		})
	}
	g.Wait()

	var failed int
	for i, sec := range sections {
		if sec.Failed() {
			failed++
			c.logger.Error("source fetch failed", "url", sources[i].URL, "error", sec.FetchErr)
		} else {
			c.logger.Info("source fetched", "url", sources[i].URL, "entries", len(sec.Entries))
		}
	}
	c.logger.Info("collection complete", "date", date, "failed", failed)

	return &snapshot.Snapshot{Date: date, Sections: sections}
}

// fetchSection fetches one source and converts the outcome into a Section:
// either entries from a fully parsed feed, or a fetch error message. Errors
// never propagate past this boundary.
func (c *Collector) fetchSection(ctx context.Context, src config.Source) snapshot.Section {
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parsed, err := c.parser.Parse(fetchCtx, src.URL)
	if err != nil {
		return snapshot.Section{
			SourceTitle: src.URL,
			FetchErr:    fmt.Sprintf("fetch %s: %v", src.URL, err),
		}
	}

	title := parsed.Title
	if title == "" {
		title = "No Title"
	}

	return snapshot.Section{
		SourceTitle: title,
		Entries:     feed.Extract(parsed, c.maxEntries, c.excerptLen),
	}
}

// Collect performs a full ingestion run for today and writes the result to
// the store. The only fatal condition is the store write.
func (c *Collector) Collect(ctx context.Context, sources []config.Source, store *snapshot.Store) (*snapshot.Snapshot, error) {
	date := time.Now().Format("2006-01-02")
	snap := c.Run(ctx, sources, date)

	if err := store.Write(snap); err != nil {
		return nil, fmt.Errorf("collection run for %s: %w", date, err)
	}
	return snap, nil
}
