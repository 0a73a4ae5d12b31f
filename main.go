// Command sdkwatch collects vendor feed updates into dated snapshots and
// answers questions about them through a grounded chat or a one-shot
// impact report.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pkg/browser"

	"github.com/sdkwatch/sdkwatch/internal/cache"
	"github.com/sdkwatch/sdkwatch/internal/chat"
	"github.com/sdkwatch/sdkwatch/internal/chat/providers"
	"github.com/sdkwatch/sdkwatch/internal/collector"
	"github.com/sdkwatch/sdkwatch/internal/config"
	"github.com/sdkwatch/sdkwatch/internal/notifier"
	"github.com/sdkwatch/sdkwatch/internal/render"
	"github.com/sdkwatch/sdkwatch/internal/report"
	"github.com/sdkwatch/sdkwatch/internal/scheduler"
	"github.com/sdkwatch/sdkwatch/internal/snapshot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := loadConfig()

	var err error
	switch os.Args[1] {
	case "collect":
		err = runCollect(cfg)
	case "report":
		open := len(os.Args) > 2 && os.Args[2] == "--open"
		err = runReport(cfg, open)
	case "chat":
		err = runChat(cfg)
	case "watch":
		err = runWatch(cfg)
	case "open":
		if len(os.Args) < 3 {
			fmt.Println("Usage: sdkwatch open <config|data|cache|report>")
			os.Exit(1)
		}
		err = runOpen(cfg, os.Args[2])
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func printUsage() {
	fmt.Println("Usage: sdkwatch <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  collect          Fetch all sources and write today's snapshot")
	fmt.Println("  report [--open]  Generate an impact report from the latest snapshot")
	fmt.Println("  chat             Chat about the latest snapshot")
	fmt.Println("  watch            Run collect (and email reports) on the configured schedule")
	fmt.Println("  open <target>    Open config, data, cache, or the latest report")
}

// loadConfig loads the config file, creating a default one on first run.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err == nil {
		return cfg
	}

	if os.IsNotExist(err) {
		cfg = config.Default()
		if saveErr := cfg.Save(); saveErr != nil {
			log.Printf("Warning: could not save default config: %v", saveErr)
		} else {
			path, _ := config.ConfigPath()
			log.Printf("Created default config at: %s", path)
		}
		return cfg
	}

	log.Printf("Warning: could not load config: %v (using defaults)", err)
	return config.Default()
}

func openStore(cfg *config.Config) (*snapshot.Store, error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	return snapshot.NewStore(filepath.Join(dataDir, "snapshots"))
}

// runCollect performs one zero-argument ingestion run for today.
func runCollect(cfg *config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := collector.New(cfg.Collect, logger)

	snap, err := c.Collect(context.Background(), cfg.Sources, store)
	if err != nil {
		return err
	}

	log.Printf("Snapshot for %s written to %s", snap.Date, store.Path(snap.Date))
	return nil
}

// latestSession loads the newest snapshot and seeds a session with it. A
// missing snapshot is a blocking precondition failure: there is nothing to
// ground answers on.
func latestSession(cfg *config.Config) (*chat.Session, string, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, "", err
	}

	text, date, err := store.Latest()
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			return nil, "", fmt.Errorf("no snapshot to ground on; run 'sdkwatch collect' first")
		}
		return nil, "", err
	}

	svc, err := providers.NewFromConfig(cfg.Analysis)
	if err != nil {
		return nil, "", err
	}

	return chat.NewSession(svc, text), date, nil
}

// buildReport generates the one-shot impact report and saves the HTML
// artifact, returning both the report and its saved path.
func buildReport(cfg *config.Config) (*report.Report, string, error) {
	session, date, err := latestSession(cfg)
	if err != nil {
		return nil, "", err
	}

	log.Printf("Analyzing snapshot %s...", date)
	answer, err := session.Ask(context.Background(), "")
	if err != nil {
		return nil, "", err
	}

	builder, err := report.New()
	if err != nil {
		return nil, "", err
	}
	r, err := builder.Build(date, answer)
	if err != nil {
		return nil, "", err
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, "", err
	}
	path, err := r.Save(filepath.Join(dataDir, "reports"))
	if err != nil {
		return nil, "", err
	}

	return r, path, nil
}

func runReport(cfg *config.Config, open bool) error {
	r, path, err := buildReport(cfg)
	if err != nil {
		return err
	}

	term := render.NewTerminal()
	fmt.Println(term.Markdown(r.PlainBody))
	log.Printf("Report saved to: %s", path)

	if open {
		return browser.OpenFile(path)
	}
	return nil
}

// runChat starts an interactive session grounded on the latest snapshot.
// Completion failures are shown inline and leave the session usable.
func runChat(cfg *config.Config) error {
	session, date, err := latestSession(cfg)
	if err != nil {
		return err
	}

	term := render.NewTerminal()
	log.Printf("Session %s grounded on snapshot %s", session.ID(), date)
	fmt.Printf("Chatting about snapshot %s. Type a question, '/history', '/report', or 'exit'.\n", date)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil // EOF ends the session
		}

		question := strings.TrimSpace(line)
		switch question {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if question == "/history" {
			for _, turn := range session.Display() {
				fmt.Printf("[%s] %s\n", turn.Role, turn.Content)
			}
			continue
		}

		if question == "/report" {
			answer, err := session.Ask(context.Background(), "")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Println(term.Markdown(answer))
			continue
		}

		answer, err := session.Converse(context.Background(), question)
		if err != nil {
			fmt.Printf("Error: %v (you can retry)\n", err)
			continue
		}
		fmt.Println(term.Markdown(answer))
	}
}

// runWatch schedules daily collection runs; when email delivery is
// configured, each run is followed by a generated and mailed report.
func runWatch(cfg *config.Config) error {
	sched, err := scheduler.New(cfg.Collect.Timezone)
	if err != nil {
		return err
	}

	job := func(ctx context.Context) error {
		if err := runCollect(cfg); err != nil {
			return err
		}
		if !cfg.Email.Enabled {
			return nil
		}

		r, _, err := buildReport(cfg)
		if err != nil {
			return err
		}
		n, err := notifier.NewFromConfig(cfg.Email)
		if err != nil {
			return err
		}
		if err := n.SendReport(r, cfg.Email.ToAddr); err != nil {
			return err
		}
		log.Printf("Report for %s mailed to %s", r.SnapshotDate, cfg.Email.ToAddr)
		return nil
	}

	if err := sched.AddJob("collect", cfg.Collect.Schedule, job); err != nil {
		return err
	}

	sched.Start()
	if next, ok := sched.NextRun("collect"); ok {
		log.Printf("Watching; next collection at %s", next)
	}

	// Block until interrupted, then let any running job finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-sched.Stop().Done()
	log.Println("Watch stopped")
	return nil
}

func runOpen(cfg *config.Config, target string) error {
	var path string
	var err error

	switch target {
	case "config":
		path, err = config.ConfigPath()
	case "data":
		path, err = cfg.DataDir()
	case "cache":
		path, err = cache.ExchangeDir()
	case "report":
		var dataDir string
		dataDir, err = cfg.DataDir()
		if err == nil {
			path, err = report.Latest(filepath.Join(dataDir, "reports"))
		}
	default:
		return fmt.Errorf("unknown target: %s", target)
	}
	if err != nil {
		return err
	}

	return browser.OpenFile(path)
}
