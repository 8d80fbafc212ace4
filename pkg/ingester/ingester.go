// Package ingester drives one batch ingestion pass over a directory of
// benchmark result files.
package ingester

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/result"
	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/store"
)

// Summary reports the outcome of one ingestion pass.
type Summary struct {
	FilesSeen    int
	FilesSkipped int
	FilesLoaded  int
	FilesFailed  int
	RowsInserted int
}

// Ingester runs a single-threaded pass over a directory, skipping
// files already in the ledger and isolating per-file failures so the
// rest of the batch continues.
type Ingester struct {
	log    logrus.FieldLogger
	store  store.Store
	dryRun bool
}

// New creates a new Ingester. With dryRun set, files are parsed and
// extracted but nothing is written to the store.
func New(log logrus.FieldLogger, st store.Store, dryRun bool) *Ingester {
	return &Ingester{
		log:    log.WithField("component", "ingester"),
		store:  st,
		dryRun: dryRun,
	}
}

// Run ingests every unprocessed JSON file in dir. A failed file is
// logged, left out of the ledger and retried on the next run; only an
// unreadable input directory or context cancellation aborts the pass.
func (ing *Ingester) Run(ctx context.Context, dir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	summary := &Summary{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.FilesSeen++
		name := entry.Name()
		fileLog := ing.log.WithField("file", name)

		processed, err := ing.store.HasProcessed(ctx, name)
		if err != nil {
			summary.FilesFailed++
			fileLog.WithError(err).Error("Ledger check failed")

			continue
		}

		if processed {
			summary.FilesSkipped++
			fileLog.Debug("Already ingested, skipping")

			continue
		}

		rows, err := ing.ingestFile(ctx, dir, name)
		if err != nil {
			summary.FilesFailed++
			fileLog.WithError(err).Warn("File not ingested, will retry next run")

			continue
		}

		summary.FilesLoaded++
		summary.RowsInserted += rows
		fileLog.WithField("rows", rows).Info("File ingested")
	}

	ing.log.WithFields(logrus.Fields{
		"seen":    summary.FilesSeen,
		"skipped": summary.FilesSkipped,
		"loaded":  summary.FilesLoaded,
		"failed":  summary.FilesFailed,
		"rows":    summary.RowsInserted,
	}).Info("Ingestion pass completed")

	return summary, nil
}

// ingestFile parses, extracts and loads a single file, returning the
// number of rows inserted. The ledger entry commits together with the
// rows, so a partially loaded file is retried whole.
func (ing *Ingester) ingestFile(ctx context.Context, dir, name string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	doc, err := result.Parse(name, data)
	if err != nil {
		return 0, err
	}

	extraction, err := result.Extract(doc)
	if err != nil {
		return 0, err
	}

	if ing.dryRun {
		return len(extraction.Rows), nil
	}

	if err := ing.store.EnsureTable(ctx, extraction.Table); err != nil {
		return 0, err
	}

	if err := ing.store.LoadDocument(ctx, extraction.Table, extraction.Rows, name); err != nil {
		return 0, err
	}

	return len(extraction.Rows), nil
}
