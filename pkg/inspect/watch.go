package inspect

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"github.com/vango-dev/valuetrack/pkg/stream"
	"github.com/vango-dev/valuetrack/pkg/track"
)

var (
	errBadWatch = errors.New("inspect: watch needs exactly one of the property or event query parameters")
	errClosed   = errors.New("inspect: server closed")
)

const writeWait = 5 * time.Second

// Frame is one WebSocket message of a watch stream.
type Frame struct {
	Path  string              `json:"path,omitempty"`
	Kind  string              `json:"kind,omitempty"`
	Value jsoniter.RawMessage `json:"value,omitempty"`
	Error string              `json:"error,omitempty"`
}

// queued is a frame waiting to be written. last ends the stream after it.
type queued struct {
	data []byte
	last bool
}

// watcher forwards the emissions of one stream to one connection.
// Emissions arrive synchronously on whichever goroutine mutates the
// tracker, so send never blocks: a full buffer disconnects the client.
type watcher struct {
	frames   chan queued
	done     chan struct{}
	stopOnce sync.Once
	// slow is written before done is closed and read only after.
	slow bool
}

func newWatcher(size int) *watcher {
	return &watcher{
		frames: make(chan queued, size),
		done:   make(chan struct{}),
	}
}

func (w *watcher) send(q queued) bool {
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.frames <- q:
		return true
	default:
		w.stopSlow()
		return false
	}
}

// stop ends the watcher. Only the first call to stop or stopSlow counts.
func (w *watcher) stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

// stopSlow ends the watcher because its buffer overflowed.
func (w *watcher) stopSlow() {
	w.stopOnce.Do(func() {
		w.slow = true
		close(w.done)
	})
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	property, event := r.URL.Query().Get("property"), r.URL.Query().Get("event")
	if (property == "") == (event == "") {
		s.writeError(w, errBadWatch)
		return
	}
	kind, path := track.KindProperty, property
	if event != "" {
		kind, path = track.KindEvent, event
	}

	src, err := s.resolve(id, kind, path)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("inspect: upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	wt := newWatcher(s.bufferSize)
	sub, ok := s.attach(id, wt, src, kind, path)
	if !ok {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, errClosed.Error()),
			time.Now().Add(writeWait))
		return
	}
	defer s.detach(wt, sub)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer wt.stop()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.pump(conn, wt)
}

// resolve looks up the stream to watch.
func (s *Server) resolve(id string, kind track.Kind, path string) (stream.Observable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errClosed
	}
	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if kind == track.KindEvent {
		return t.E(path)
	}
	return t.P(path)
}

// attach subscribes wt to src. The current value of a property is queued
// before attach returns.
func (s *Server) attach(id string, wt *watcher, src stream.Observable, kind track.Kind, path string) (*stream.Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	if _, ok := s.objects[id]; !ok {
		return nil, false
	}
	s.watchers[wt] = id
	s.wg.Add(1)

	encode := func(f Frame) []byte {
		data, err := json.Marshal(f)
		if err != nil {
			data, _ = json.Marshal(Frame{Error: err.Error()})
		}
		return data
	}
	sub := src.Subscribe(stream.Observer{
		Next: func(v any) {
			wt.send(queued{data: encode(Frame{Path: path, Kind: kind.String(), Value: marshalValue(v)})})
		},
		Error: func(err error) {
			wt.send(queued{data: encode(Frame{Path: path, Error: err.Error()}), last: true})
		},
		Complete: func() {
			wt.send(queued{last: true})
		},
	})
	return sub, true
}

func (s *Server) detach(wt *watcher, sub *stream.Subscription) {
	s.mu.Lock()
	sub.Unsubscribe()
	delete(s.watchers, wt)
	s.mu.Unlock()
	wt.stop()
	s.wg.Done()
}

// pump writes queued frames until the stream ends or the watcher stops.
func (s *Server) pump(conn *websocket.Conn, wt *watcher) {
	closeWith := func(code int, text string) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, text),
			time.Now().Add(writeWait))
	}

	for {
		select {
		case q := <-wt.frames:
			if q.data != nil {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, q.data); err != nil {
					return
				}
			}
			if q.last {
				closeWith(websocket.CloseNormalClosure, "")
				return
			}
		case <-wt.done:
			if wt.slow {
				closeWith(websocket.ClosePolicyViolation, "client too slow")
			} else {
				closeWith(websocket.CloseGoingAway, "")
			}
			return
		}
	}
}
