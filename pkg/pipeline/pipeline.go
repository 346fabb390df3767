// Package pipeline orchestrates the extraction run: fetch each URL,
// clean the markup, ask the model for CSV rows, and append the parsed
// records to the output file.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jmylchreest/teamscan/internal/logger"
	"github.com/jmylchreest/teamscan/pkg/cleaner"
	"github.com/jmylchreest/teamscan/pkg/extract"
	"github.com/jmylchreest/teamscan/pkg/fetcher"
	"github.com/jmylchreest/teamscan/pkg/llm"
)

// Config tunes a pipeline run.
type Config struct {
	OutputPath    string
	ArtifactDir   string
	MaxInputChars int
	Temperature   float64
	MaxNewTokens  int
	SaveRawOnly   bool // Fetch and clean only; skip the model and CSV output
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		OutputPath:    "people.csv",
		ArtifactDir:   "artifacts",
		MaxInputChars: 24000,
		Temperature:   0.6,
		MaxNewTokens:  2048,
	}
}

// Summary reports what a run did.
type Summary struct {
	URLs         int
	People       int
	Duplicates   int
	Placeholders int
	Failed       int
	Duration     time.Duration
}

// Runner drives the per-URL pipeline.
type Runner struct {
	Fetcher  fetcher.Fetcher
	Cleaner  cleaner.Cleaner
	Provider llm.Provider
	Prompter extract.Prompter
	Config   Config
}

// Run processes every URL and appends results to the output CSV. An
// unwritable output file is fatal; anything that goes wrong with a
// single URL is logged, recorded as a placeholder row, and the run
// moves on.
func (r *Runner) Run(ctx context.Context, urls []string) (Summary, error) {
	start := time.Now()
	summary := Summary{URLs: len(urls)}

	var out *CSVWriter
	if !r.Config.SaveRawOnly {
		var err error
		out, err = NewCSVWriter(r.Config.OutputPath)
		if err != nil {
			return summary, err
		}
		defer out.Close()
	}

	store, err := NewArtifactStore(r.Config.ArtifactDir)
	if err != nil {
		return summary, err
	}

	deduper := extract.NewDeduper()

	for _, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		people, err := r.processURL(ctx, pageURL, store)
		if err != nil {
			logger.Error("URL failed", "url", pageURL, "error", err)
			summary.Failed++
		}

		if r.Config.SaveRawOnly {
			continue
		}

		accepted := 0
		for _, p := range people {
			// An all-empty row carries no data; let the single
			// placeholder row stand in for it instead.
			if p.IsPlaceholder() {
				logger.Debug("dropping empty record", "url", pageURL)
				continue
			}
			if !deduper.Accept(p) {
				logger.Debug("duplicate person skipped",
					"url", pageURL, "name", p.FullName)
				summary.Duplicates++
				continue
			}
			if p.Age == "" {
				p.Age = extract.InferAge(p.FullBio + " " + p.Education)
			}
			if err := out.Write(p); err != nil {
				return summary, err
			}
			accepted++
		}

		if accepted == 0 {
			// Keep one row per URL so downstream sheets show which
			// sites produced nothing.
			if err := out.Write(extract.Placeholder(pageURL)); err != nil {
				return summary, err
			}
			summary.Placeholders++
		} else {
			summary.People += accepted
		}

		if err := out.Flush(); err != nil {
			return summary, fmt.Errorf("failed to flush output: %w", err)
		}
	}

	summary.Duration = time.Since(start)
	logger.Info("run complete",
		"urls", summary.URLs,
		"people", summary.People,
		"duplicates", summary.Duplicates,
		"placeholders", summary.Placeholders,
		"failed", summary.Failed,
		"duration", summary.Duration)
	return summary, nil
}

// processURL runs fetch, clean, prompt, generate, and parse for one
// URL. A nil error with no people means the page yielded nothing.
func (r *Runner) processURL(ctx context.Context, pageURL string, store *ArtifactStore) ([]extract.Person, error) {
	logger.Info("processing", "url", pageURL)

	content, err := r.Fetcher.Fetch(ctx, pageURL, fetcher.Options{})
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	text, err := r.Cleaner.Clean(content.HTML)
	if err != nil {
		return nil, fmt.Errorf("clean failed: %w", err)
	}

	if path, err := store.SaveText(pageURL, text); err != nil {
		logger.Warn("could not save text artifact", "url", pageURL, "error", err)
	} else {
		logger.Debug("saved text artifact", "path", path, "chars", len(text))
	}

	if text == "" {
		logger.Warn("page produced no text", "url", pageURL)
		return nil, nil
	}
	if r.Config.SaveRawOnly {
		return nil, nil
	}

	prompt := r.Prompter.Build(pageURL, text)
	resp, err := r.Provider.Generate(ctx, llm.Request{
		Prompt:       prompt,
		Temperature:  r.Config.Temperature,
		MaxNewTokens: r.Config.MaxNewTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	if path, err := store.SaveResponse(pageURL, resp.Content); err != nil {
		logger.Warn("could not save response artifact", "url", pageURL, "error", err)
	} else {
		logger.Debug("saved response artifact", "path", path)
	}

	people := extract.ParseResponse(resp.Content)
	for i := range people {
		// The model occasionally rewrites the source URL; pin it.
		people[i].Website = pageURL
	}
	logger.Info("extracted", "url", pageURL, "people", len(people),
		"model", resp.Model, "duration", resp.Duration)
	return people, nil
}
