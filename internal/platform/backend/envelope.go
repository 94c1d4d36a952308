package backend

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/goccy/go-json"
)

// SuccessCode is the only statusCode the backend uses to signal success.
const SuccessCode = 1

const maxEncodingLayers = 3

// Envelope wraps every backend response.
type Envelope struct {
	StatusCode int                        `json:"statusCode"`
	Message    string                     `json:"message,omitempty"`
	DataFetch  map[string]json.RawMessage `json:"dataFetch,omitempty"`
}

type rawEnvelope struct {
	StatusCode json.RawMessage `json:"statusCode"`
	Message    string          `json:"message"`
	DataFetch  json.RawMessage `json:"dataFetch"`
}

func (e *Envelope) OK() bool {
	return e != nil && e.StatusCode == SuccessCode
}

// Decode parses a response body that may be a JSON document or a JSON
// string holding the document. dataFetch gets the same treatment.
func Decode(body []byte) (*Envelope, error) {
	doc, err := unwrap(body)
	if err != nil {
		return nil, errors.Wrap(err, "unwrap envelope")
	}
	if len(doc) == 0 {
		return nil, errors.New("empty response body")
	}
	var raw rawEnvelope
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, errors.Wrap(err, "decode envelope")
	}
	env := &Envelope{Message: raw.Message}
	if env.StatusCode, err = decodeStatus(raw.StatusCode); err != nil {
		return nil, err
	}
	if len(raw.DataFetch) > 0 && !bytes.Equal(bytes.TrimSpace(raw.DataFetch), []byte("null")) {
		fetch, err := unwrap(raw.DataFetch)
		if err != nil {
			return nil, errors.Wrap(err, "unwrap dataFetch")
		}
		if err := json.Unmarshal(fetch, &env.DataFetch); err != nil {
			return nil, errors.Wrap(err, "decode dataFetch")
		}
	}
	return env, nil
}

// decodeStatus tolerates statusCode sent as a number or a numeric string.
func decodeStatus(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, errors.Wrap(err, "decode statusCode")
		}
	}
	code, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Wrapf(err, "statusCode %q", text)
	}
	return code, nil
}

// Table returns the rows of one dataFetch table. A missing table is empty.
func (e *Envelope) Table(name string) ([]Record, error) {
	if e == nil || e.DataFetch == nil {
		return []Record{}, nil
	}
	raw, ok := e.DataFetch[name]
	if !ok {
		return []Record{}, nil
	}
	doc, err := unwrap(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "unwrap table %s", name)
	}
	if len(doc) == 0 || bytes.Equal(doc, []byte("null")) {
		return []Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var rows []Record
	if err := dec.Decode(&rows); err != nil {
		return nil, errors.Wrapf(err, "decode table %s", name)
	}
	if rows == nil {
		rows = []Record{}
	}
	return rows, nil
}

// unwrap peels JSON string layers until an object, array or scalar remains.
func unwrap(raw []byte) ([]byte, error) {
	doc := bytes.TrimSpace(raw)
	for i := 0; i < maxEncodingLayers; i++ {
		if len(doc) == 0 || doc[0] != '"' {
			return doc, nil
		}
		var inner string
		if err := json.Unmarshal(doc, &inner); err != nil {
			return nil, err
		}
		doc = bytes.TrimSpace([]byte(inner))
	}
	if len(doc) > 0 && doc[0] == '"' {
		return nil, errors.Errorf("more than %d encoding layers", maxEncodingLayers)
	}
	return doc, nil
}

// Record is one backend row with loosely typed columns.
type Record map[string]any

// lookup matches the column name exactly, then case-insensitively.
func (r Record) lookup(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func (r Record) String(key string) string {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

func (r Record) Bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.String(key))) {
	case "true", "1", "y", "yes":
		return true
	}
	return false
}
