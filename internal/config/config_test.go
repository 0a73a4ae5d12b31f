package config_test

import (
	"testing"

	"github.com/sdkwatch/sdkwatch/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if len(cfg.Sources) != 3 {
		t.Fatalf("expected 3 default sources, got %d", len(cfg.Sources))
	}

	kinds := map[string]bool{}
	for _, src := range cfg.Sources {
		if src.URL == "" {
			t.Error("default source with empty URL")
		}
		kinds[src.Kind] = true
	}
	for _, kind := range []string{config.KindBlog, config.KindReleaseFeed, config.KindCommitFeed} {
		if !kinds[kind] {
			t.Errorf("missing default source of kind %q", kind)
		}
	}

	if cfg.Collect.MaxEntries != 10 {
		t.Errorf("expected 10 entries per source, got %d", cfg.Collect.MaxEntries)
	}
	if cfg.Collect.ExcerptLength != 600 {
		t.Errorf("expected 600-rune excerpts, got %d", cfg.Collect.ExcerptLength)
	}
	if cfg.Collect.TimeoutSeconds <= 0 {
		t.Error("per-source timeout must be set by default")
	}
	if cfg.Analysis.LLMProvider != config.ProviderAnthropic {
		t.Errorf("unexpected default provider %q", cfg.Analysis.LLMProvider)
	}
}
