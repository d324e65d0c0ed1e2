package inspect

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/valuetrack/pkg/track"
)

// DefaultBufferSize is the number of frames a watcher may have queued
// before it is considered too slow and disconnected.
const DefaultBufferSize = 64

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithBufferSize sets the per-watcher frame buffer.
func WithBufferSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// WithCheckOrigin sets the WebSocket origin check. By default only
// same-origin requests are upgraded.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// Server exposes registered trackers over HTTP and WebSocket.
type Server struct {
	// mu serializes every access to registered trackers.
	mu       sync.Mutex
	objects  map[string]*track.Tracker
	order    []string
	watchers map[*watcher]string
	closed   bool

	logger     *slog.Logger
	bufferSize int
	upgrader   websocket.Upgrader
	router     chi.Router
	wg         sync.WaitGroup
}

// New creates a Server with no registered trackers.
func New(opts ...Option) *Server {
	s := &Server{
		objects:    make(map[string]*track.Tracker),
		watchers:   make(map[*watcher]string),
		logger:     slog.Default(),
		bufferSize: DefaultBufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Route("/objects", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleObject)
			r.Get("/properties/{name}", s.handleProperty)
			r.Get("/watch", s.handleWatch)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Register makes t visible to clients. Registering twice is a no-op.
func (s *Server) Register(t *track.Tracker) {
	id := t.ID()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; ok {
		return
	}
	s.objects[id] = t
	s.order = append(s.order, id)
}

// Unregister removes a tracker and disconnects its watchers. It reports
// whether the tracker was registered.
func (s *Server) Unregister(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	for w, owner := range s.watchers {
		if owner == id {
			w.stop()
		}
	}
	return true
}

// Do runs fn while holding the server lock. Registered trackers must only
// be mutated inside Do while the server is running.
func (s *Server) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Close disconnects every watcher and waits for their goroutines to exit.
// Later watch requests are rejected.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	for w := range s.watchers {
		w.stop()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// lookup returns a registered tracker. Callers must hold s.mu.
func (s *Server) lookup(id string) (*track.Tracker, error) {
	t, ok := s.objects[id]
	if !ok {
		return nil, errUnknownObject
	}
	return t, nil
}

var errUnknownObject = errors.New("inspect: unknown object")
