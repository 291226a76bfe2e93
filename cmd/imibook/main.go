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

// Command imibook reconstructs per-instrument order books from a directory
// of SIX IMI day files, optionally persisting the result bundle to SQLite,
// serving Prometheus metrics, and dropping into an inspection REPL once the
// batch completes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sixmd/imibook/runner"
	"github.com/sixmd/imibook/runnercfg"
	"github.com/sixmd/imibook/shell"
	"github.com/sixmd/imibook/store"
	"github.com/sixmd/imibook/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	inputGlob := flag.String("input", "", "glob of day files to process, e.g. ./data/*_2024_03_15.bin")
	workers := flag.Int("workers", 0, "worker count (0 = GOMAXPROCS-1)")
	dbPath := flag.String("db", "", "SQLite path to persist results to (empty disables persistence)")
	metricsAddr := flag.String("metrics", "", "address to serve Prometheus /metrics on (empty disables)")
	interactive := flag.Bool("shell", false, "drop into an inspection REPL after processing")
	flag.Parse()

	cfg, err := runnercfg.Load(*configPath)
	if err != nil {
		log.Fatalf("imibook: config: %v", err)
	}
	if *inputGlob != "" {
		cfg.InputGlob = *inputGlob
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	var metrics *telemetry.Metrics
	if cfg.MetricsAddr != "" {
		m, registry := telemetry.New()
		metrics = m
		go func() {
			if err := telemetry.Serve(cfg.MetricsAddr, registry); err != nil {
				log.Printf("imibook: metrics server: %v", err)
			}
		}()
	}

	orch := runner.New(cfg, metrics)
	results, err := orch.RunAll(context.Background())
	if err != nil {
		log.Fatalf("imibook: run: %v", err)
	}
	fmt.Printf("imibook: processed %d day file(s) matching %q\n", len(results), cfg.InputGlob)

	if cfg.DBPath != "" {
		rs, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("imibook: open store: %v", err)
		}
		defer rs.Close()
		for _, res := range results {
			if res == nil {
				continue
			}
			if err := rs.StoreDay(res); err != nil {
				log.Printf("imibook: store day %s: %v", res.Date, err)
			}
		}
	}

	for _, res := range results {
		if res == nil {
			continue
		}
		if len(res.PoisonedBooks) > 0 {
			fmt.Fprintf(os.Stderr, "imibook: %s: %d poisoned book(s)\n", res.Date, len(res.PoisonedBooks))
		}
	}

	if *interactive {
		shell.Run(results)
	}
}
