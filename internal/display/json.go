package display

import (
	"context"
	"encoding/json"
	"io"
	"sync"
)

// JSON writes each record as one JSON object per line.
type JSON struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

type jsonRecord struct {
	Record
	Display string `json:"display"`
}

func (j *JSON) Display(_ context.Context, rec Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enc.Encode(jsonRecord{Record: rec, Display: rec.String()})
}
