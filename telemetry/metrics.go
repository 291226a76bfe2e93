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

// Package telemetry exposes Prometheus counters for the orchestrator's
// day-processing throughput and error taxonomy.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sixmd/imibook/book"
)

// Metrics holds every counter the orchestrator updates as days
// complete.
type Metrics struct {
	DaysProcessed   prometheus.Counter
	DaysLost        prometheus.Counter
	BooksPoisoned   prometheus.Counter
	FramingErrors   prometheus.Counter
	DecodingErrors  prometheus.Counter
	ReferenceErrors prometheus.Counter
	InvariantErrors prometheus.Counter
	SystemErrors    prometheus.Counter
}

// New registers all metrics on a fresh registry and returns the bundle.
func New() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		DaysProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_days_processed_total",
			Help: "Number of day files successfully processed to completion or truncation.",
		}),
		DaysLost: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_days_lost_total",
			Help: "Number of day files abandoned due to a category-5 system error.",
		}),
		BooksPoisoned: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_books_poisoned_total",
			Help: "Number of books marked fatal by an invariant violation.",
		}),
		FramingErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_errors_framing_total", Help: "Category-1 framing errors.",
		}),
		DecodingErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_errors_decoding_total", Help: "Category-2 decoding errors.",
		}),
		ReferenceErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_errors_reference_total", Help: "Category-3 reference errors.",
		}),
		InvariantErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_errors_invariant_total", Help: "Category-4 invariant violations.",
		}),
		SystemErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "imibook_errors_system_total", Help: "Category-5 system errors.",
		}),
	}, reg
}

// ObserveDay folds one completed day's error summary into the counters.
// It takes book.ErrorCounts and a poisoned-book count rather than a
// runner.DayResult to keep telemetry free of a dependency on runner
// (which itself depends on telemetry to report as it goes).
func (m *Metrics) ObserveDay(errs book.ErrorCounts, poisonedBooks int) {
	m.DaysProcessed.Inc()
	m.BooksPoisoned.Add(float64(poisonedBooks))
	m.FramingErrors.Add(float64(errs.Framing))
	m.DecodingErrors.Add(float64(errs.Decoding))
	m.ReferenceErrors.Add(float64(errs.Reference))
	m.InvariantErrors.Add(float64(errs.Invariant))
	m.SystemErrors.Add(float64(errs.System))
}

// Serve starts a blocking HTTP server exposing /metrics on addr.
func Serve(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
