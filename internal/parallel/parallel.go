// Package parallel runs independent export jobs concurrently and
// reports per-job progress on the terminal.
package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msalah0e/canopy/internal/ui"
)

// Job produces one output artifact, typically a rendered file.
type Job struct {
	Name string
	Fn   func() ([]byte, error)
}

// Result holds the outcome of one job. Data is nil on failure.
type Result struct {
	Name    string
	Data    []byte
	Err     error
	Elapsed time.Duration
}

// OK reports whether the job succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Run executes jobs with the given concurrency limit and returns
// results in submission order. Failures never abort the batch; callers
// inspect each result.
func Run(jobs []Job, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 4
	}

	results := make([]Result, len(jobs))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			start := time.Now()
			data, err := job.Fn()
			elapsed := time.Since(start)

			results[i] = Result{Name: job.Name, Data: data, Err: err, Elapsed: elapsed}
			if err != nil {
				results[i].Data = nil
			}

			mu.Lock()
			if err != nil {
				fmt.Printf("  %s %s %s\n", ui.StatusIcon(false), job.Name, ui.Bad.Sprintf("(%v)", err))
			} else {
				fmt.Printf("  %s %s %s\n", ui.StatusIcon(true), job.Name,
					ui.Subtle.Sprintf("%s, %.1fs", ui.ByteSize(len(data)), elapsed.Seconds()))
			}
			mu.Unlock()

			return nil // collect failures instead of failing the group
		})
	}

	_ = g.Wait()
	return results
}
