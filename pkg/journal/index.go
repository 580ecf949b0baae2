package journal

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/gojot/pkg/document"
)

// ErrNotDirectory is returned when the notes directory is a file.
var ErrNotDirectory = errors.New("not a directory")

// Index discovers the documents under opts.Dir and loads them concurrently.
// A document that fails to load is reported on its Entry; only discovery
// and cancellation fail the whole index.
func Index(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Entries: make([]Entry, 0, len(files))}
	result.Stats.Discovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan Entry)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts.Parse)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; rebuild the discovery order.
	entries := make(map[string]Entry, len(files))
	for entry := range outCh {
		entries[entry.Path] = entry
	}
	for _, path := range files {
		if entry, ok := entries[path]; ok {
			result.accumulate(entry)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("index cancelled: %w", ctx.Err())
	}
	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- Entry, opts document.ParseOptions) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		entry := Entry{Path: path}
		entry.Doc, entry.Error = document.Load(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- entry:
		}
	}
}
