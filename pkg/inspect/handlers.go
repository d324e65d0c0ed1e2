package inspect

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/vango-dev/valuetrack/pkg/track"
)

// ObjectSummary describes a registered tracker in GET /objects.
type ObjectSummary struct {
	ID         string   `json:"id"`
	Label      string   `json:"label,omitempty"`
	Properties []string `json:"properties"`
	Events     []string `json:"events"`
	Disposed   bool     `json:"disposed,omitempty"`
}

// ObjectValues is the body of GET /objects/{id}.
type ObjectValues struct {
	ID     string                         `json:"id"`
	Label  string                         `json:"label,omitempty"`
	Values map[string]jsoniter.RawMessage `json:"values"`
}

// PropertyValue is the body of GET /objects/{id}/properties/{name}.
type PropertyValue struct {
	Name  string              `json:"name"`
	Value jsoniter.RawMessage `json:"value"`
	Set   bool                `json:"set"`
}

// errorBody is the JSON error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]ObjectSummary, 0, len(s.order))
	for _, id := range s.order {
		t := s.objects[id]
		out = append(out, ObjectSummary{
			ID:         id,
			Label:      t.Label(),
			Properties: nonNil(t.Properties()),
			Events:     nonNil(t.Events()),
			Disposed:   t.Disposed(),
		})
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t, err := s.lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.mu.Unlock()
		s.writeError(w, err)
		return
	}
	body := ObjectValues{
		ID:     t.ID(),
		Label:  t.Label(),
		Values: make(map[string]jsoniter.RawMessage),
	}
	for name, v := range t.Snapshot() {
		body.Values[name] = marshalValue(v)
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	t, err := s.lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.mu.Unlock()
		s.writeError(w, err)
		return
	}
	p, err := t.LookupProperty(name)
	if err != nil {
		s.mu.Unlock()
		s.writeError(w, err)
		return
	}
	v, set := p.Value()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, PropertyValue{Name: name, Value: marshalValue(v), Set: set})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("inspect: encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusOf(err), errorBody{Error: err.Error(), Code: codeOf(err)})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errUnknownObject),
		errors.Is(err, track.ErrUnknownProperty),
		errors.Is(err, track.ErrUnknownEvent):
		return http.StatusNotFound
	case errors.Is(err, errBadWatch):
		return http.StatusBadRequest
	case errors.Is(err, errClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func codeOf(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
