// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package statserver exposes campaign statistics over HTTP.
package statserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/google/fuzzstat/pkg/campaign"
	"github.com/google/fuzzstat/pkg/display"
	"github.com/google/fuzzstat/pkg/log"
	"github.com/google/fuzzstat/pkg/stat"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServer struct {
	// To be set before calling Serve.
	Addr     string
	Campaign *campaign.Campaign
	Stats    *stat.Set
	Gatherer prometheus.Gatherer

	// The status page has its own rate state, independent of the terminal.
	mu sync.Mutex
	st display.State
}

func (serv *HTTPServer) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	handle := func(pattern string, handler func(http.ResponseWriter, *http.Request)) {
		mux.Handle(pattern, handlers.CompressHandler(http.HandlerFunc(handler)))
	}
	gatherer := serv.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	handle("/", serv.httpStatus)
	handle("/logs", serv.httpLogs)
	handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	handle("/stats", serv.httpStats)
	handle("/status", serv.httpStatus)
	// Browsers like to request this, without special handler this goes to / handler.
	handle("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {})
	return mux
}

// Serve listens on Addr until ctx is cancelled.
func (serv *HTTPServer) Serve(ctx context.Context) error {
	if serv.Addr == "" {
		return fmt.Errorf("starting a disabled HTTP server")
	}
	ln, err := net.Listen("tcp", serv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %v: %w", serv.Addr, err)
	}
	return serv.serve(ctx, ln)
}

func (serv *HTTPServer) serve(ctx context.Context, ln net.Listener) error {
	log.Logf(0, "serving http on http://%v", ln.Addr())
	server := &http.Server{
		Handler:           serv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		// The http server package does not natively take a context.Context.
		<-ctx.Done()
		server.Close()
	}()
	err := server.Serve(ln)
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (serv *HTTPServer) httpStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/status" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	snap := display.Take(serv.Campaign, time.Now())
	serv.mu.Lock()
	snap.Rate = serv.st.Update(snap.Mutations)
	serv.mu.Unlock()
	lines := display.Compose(&snap, display.Plain)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%v\n", strings.Join(lines, "\n"))
}

func (serv *HTTPServer) httpStats(w http.ResponseWriter, r *http.Request) {
	set := serv.Stats
	if set == nil {
		set = stat.Default()
	}
	level := stat.All
	if r.FormValue("level") == "console" {
		level = stat.Console
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, ui := range set.Collect(level) {
		fmt.Fprintf(tw, "%v\t%v\t%v\n", ui.Name, ui.Value, ui.Desc)
	}
	tw.Flush()
}

func (serv *HTTPServer) httpLogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, log.CachedLogOutput())
}
