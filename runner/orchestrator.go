/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sixmd/imibook/runnercfg"
	"github.com/sixmd/imibook/telemetry"
)

// Orchestrator fans a directory of day files across N-1 worker goroutines,
// each running one DayRunner synchronously to completion. It is the
// external-collaborator boundary the core's day-level parallelism model
// assumes but does not itself implement.
type Orchestrator struct {
	cfg     runnercfg.Config
	metrics *telemetry.Metrics
}

// New constructs an Orchestrator from cfg. metrics may be nil to disable
// instrumentation entirely.
func New(cfg runnercfg.Config, metrics *telemetry.Metrics) *Orchestrator {
	return &Orchestrator{cfg: cfg, metrics: metrics}
}

// RunAll globs cfg.InputGlob, processes every matching file concurrently
// (errgroup.SetLimit bounds concurrency to GOMAXPROCS-1, or cfg.Workers
// when set), and returns the results in file-name order. A single file's
// error (I/O failure reading it) does not cancel the other in-flight
// files - category 5 says only that file's day is lost.
func (o *Orchestrator) RunAll(ctx context.Context) ([]*DayResult, error) {
	files, err := filepath.Glob(o.cfg.InputGlob)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	limit := o.cfg.Workers
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0) - 1
		if limit < 1 {
			limit = 1
		}
	}

	results := make([]*DayResult, len(files))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	runner := NewDayRunner(o.cfg.SnapshotStart, o.cfg.SnapshotEnd)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := os.ReadFile(path)
			if err != nil {
				// Category-5 I/O failure: this day is lost, others continue.
				if o.metrics != nil {
					o.metrics.DaysLost.Inc()
				}
				return nil
			}
			result := runner.Run(path, data)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			if o.metrics != nil {
				o.metrics.ObserveDay(result.Errors, len(result.PoisonedBooks))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
