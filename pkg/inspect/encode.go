package inspect

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/vango-dev/valuetrack/pkg/track"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// identified is implemented by Tracker and every struct embedding one.
type identified interface {
	track.Trackable
	ID() string
}

// trackerRef is how a tracker held in a value is encoded.
type trackerRef struct {
	ID string `json:"$tracker"`
}

// encodable replaces trackers by references, descending into the slices
// and maps produced by combined streams.
func encodable(v any) any {
	switch v := v.(type) {
	case identified:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
		return trackerRef{ID: v.ID()}
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = encodable(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = encodable(e)
		}
		return out
	default:
		return v
	}
}

// marshalValue encodes v, falling back to its fmt representation when it
// cannot be encoded as JSON.
func marshalValue(v any) jsoniter.RawMessage {
	data, err := json.Marshal(encodable(v))
	if err == nil {
		return data
	}
	data, _ = json.Marshal(fmt.Sprint(v))
	return data
}
