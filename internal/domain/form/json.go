package form

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/go-faster/errors"
	"github.com/goccy/go-json"
)

type fileView struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	Preview     string `json:"preview"`
}

type fileInput struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindOption:
		return json.Marshal(v.Option)
	case KindFlag:
		return json.Marshal(v.Flag)
	case KindRows:
		rows := v.Rows
		if rows == nil {
			rows = []State{}
		}
		return json.Marshal(rows)
	case KindFile:
		if v.File == nil {
			return []byte("null"), nil
		}
		return json.Marshal(fileView{
			Name:        v.File.Name,
			ContentType: v.File.ContentType,
			Size:        len(v.File.Data),
			Preview:     v.File.Preview,
		})
	}
	return []byte("null"), nil
}

// UnmarshalJSON infers the kind from the JSON shape: strings and numbers are
// text, booleans are flags, arrays are rows, objects carrying "data" are file
// uploads and any other object is an option.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "decode text value")
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return errors.Wrap(err, "decode flag value")
		}
		*v = Flag(b)
	case '[':
		var rows []State
		if err := json.Unmarshal(data, &rows); err != nil {
			return errors.Wrap(err, "decode rows value")
		}
		*v = Rows(rows...)
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			return errors.Wrap(err, "decode object value")
		}
		if _, ok := probe["data"]; ok {
			var in fileInput
			if err := json.Unmarshal(data, &in); err != nil {
				return errors.Wrap(err, "decode file value")
			}
			f, err := decodeUpload(in)
			if err != nil {
				return err
			}
			*v = Attachment(f)
			return nil
		}
		var opt Option
		if err := json.Unmarshal(data, &opt); err != nil {
			return errors.Wrap(err, "decode option value")
		}
		*v = Choice(opt)
	default:
		*v = Text(string(data))
	}
	return nil
}

// decodeUpload accepts either bare base64 or a full data URL.
func decodeUpload(in fileInput) (File, error) {
	payload := in.Data
	contentType := in.ContentType
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return File{}, errors.New("malformed data url")
		}
		meta := strings.TrimSuffix(strings.TrimPrefix(payload[:comma], "data:"), ";base64")
		if contentType == "" {
			contentType = meta
		}
		payload = payload[comma+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return File{}, errors.Wrap(err, "decode file data")
	}
	return NewFile(in.Name, contentType, raw), nil
}

func (s State) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.values)
}

func (s *State) UnmarshalJSON(data []byte) error {
	values := map[string]Value{}
	if err := json.Unmarshal(data, &values); err != nil {
		return errors.Wrap(err, "decode form state")
	}
	s.values = values
	return nil
}
