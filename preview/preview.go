// Package preview serves a live-updating ASCII rendering of a graph
// description file over HTTP: fsnotify watches the file, and connected
// browsers are notified over SSE to refetch the rendered diagram.
package preview

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teleivo/dagascii"
	"github.com/teleivo/dagascii/graph"
)

// Config configures a Preview.
type Config struct {
	File   string    // graph description file to serve
	Port   string    // HTTP server port (use "0" for a random available port)
	Debug  bool      // enable debug logging
	Stdout io.Writer // output for status messages
	Stderr io.Writer // output for error logging
}

// Preview watches a graph description file for changes and serves its
// rendered diagram over HTTP, with an SSE endpoint that tells connected
// browsers when to refetch it.
type Preview struct {
	file     string
	stdout   io.Writer
	logger   *slog.Logger
	server   *http.Server
	watcher  *fsnotify.Watcher
	shutdown chan struct{}
	clients  sync.WaitGroup

	mu          sync.Mutex
	subscribers map[chan time.Time]struct{}
}

//go:embed index.html
var indexHTML []byte

// New creates a Preview serving the given graph description file on the
// specified port.
func New(cfg Config) (*Preview, error) {
	_, err := os.Stat(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("file error: %v", err)
	}
	addr, err := netip.ParseAddrPort("127.0.0.1:" + cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q, must be 0 or in range 1-65535", cfg.Port)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %v", err)
	}
	if err := watcher.Add(cfg.File); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %v", cfg.File, err)
	}

	handler := http.NewServeMux()
	server := http.Server{
		Addr:        addr.String(),
		Handler:     handler,
		ReadTimeout: 3 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cfg.Stderr, &slog.HandlerOptions{Level: level}))

	p := &Preview{
		file:        cfg.File,
		stdout:      cfg.Stdout,
		logger:      logger,
		server:      &server,
		watcher:     watcher,
		shutdown:    make(chan struct{}),
		subscribers: make(map[chan time.Time]struct{}),
	}
	handler.HandleFunc("GET /", p.handleIndex)
	handler.HandleFunc("GET /events", p.handleEvents)
	diagramHandler := http.TimeoutHandler(http.HandlerFunc(p.handleDiagram), 5*time.Second, "failed to render diagram in time")
	handler.Handle("GET /diagram", diagramHandler)
	return p, nil
}

// Watch starts the HTTP server and the file watcher, and blocks until the
// context is cancelled.
func (p *Preview) Watch(ctx context.Context) error {
	ln, err := net.Listen("tcp", p.server.Addr)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(p.stdout, "previewing on http://%s\n", ln.Addr())

	go p.watchFile()

	go func() {
		<-ctx.Done()
		close(p.shutdown)
		p.logger.Debug("shutting down, notifying clients")
		p.clients.Wait()
		_ = p.watcher.Close()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		if err := p.server.Shutdown(ctxTimeout); err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error("failed to shutdown", "error", err)
		}
	}()

	if err := p.server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// watchFile drains fsnotify's single event stream and fans each relevant
// change out to every subscribed client. fsnotify's channel has exactly one
// reader; a naive per-client select on it would let only one client see
// each event, so broadcast goes through the subscribers set instead.
func (p *Preview) watchFile() {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				p.logger.Debug("change detected", "op", event.Op.String(), "name", event.Name)
				p.broadcast(time.Now())
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("watcher error", "error", err)
		case <-p.shutdown:
			return
		}
	}
}

func (p *Preview) subscribe() chan time.Time {
	ch := make(chan time.Time, 1)
	p.mu.Lock()
	p.subscribers[ch] = struct{}{}
	p.mu.Unlock()
	return ch
}

func (p *Preview) unsubscribe(ch chan time.Time) {
	p.mu.Lock()
	delete(p.subscribers, ch)
	p.mu.Unlock()
}

func (p *Preview) broadcast(t time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subscribers {
		select {
		case ch <- t:
		default:
		}
	}
}

func (p *Preview) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if _, err := w.Write(indexHTML); err != nil {
		p.logger.Error("failed to write index.html", "error", err)
	}
}

func (p *Preview) handleEvents(w http.ResponseWriter, r *http.Request) {
	p.clients.Add(1)
	defer p.clients.Done()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	changes := p.subscribe()
	defer p.unsubscribe(changes)

	p.logger.Debug("client connected")

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			p.logger.Debug("client disconnected")
			return
		case <-p.shutdown:
			_, _ = fmt.Fprint(w, "event: close\ndata: shutdown\n\n")
			flusher.Flush()
			p.logger.Debug("closing connection to client")
			return
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keep-alive\n"))
			flusher.Flush()
		case t := <-changes:
			_, _ = fmt.Fprintf(w, "data: %d\nretry: 5000\n\n", t.UnixNano())
			flusher.Flush()
		}
	}
}

func (p *Preview) handleDiagram(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	out, err := p.render()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprint(w, err.Error())
		return
	}
	_, _ = fmt.Fprint(w, out)
}

func (p *Preview) render() (string, error) {
	data, err := os.ReadFile(p.file)
	if err != nil {
		return "", err
	}
	dag, err := graph.DecodeJSON(data)
	if err != nil {
		return "", err
	}
	return dagascii.Render(dag)
}
