package form

import (
	"encoding/base64"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindOption
	KindFlag
	KindRows
	KindFile
)

// Value holds one field of a form. Exactly one payload member is meaningful,
// selected by Kind.
type Value struct {
	Kind   Kind
	Text   string
	Option Option
	Flag   bool
	Rows   []State
	File   *File
}

func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func Choice(opt Option) Value {
	return Value{Kind: KindOption, Option: opt}
}

func Flag(b bool) Value {
	return Value{Kind: KindFlag, Flag: b}
}

func Rows(rows ...State) Value {
	if rows == nil {
		rows = []State{}
	}
	return Value{Kind: KindRows, Rows: rows}
}

func Attachment(f File) Value {
	return Value{Kind: KindFile, File: &f}
}

// String renders the value as it is searched, compared and exported.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindOption:
		return v.Option.Value
	case KindFlag:
		return strconv.FormatBool(v.Flag)
	case KindFile:
		if v.File != nil {
			return v.File.Name
		}
	}
	return ""
}

func (v Value) IsBlank() bool {
	switch v.Kind {
	case KindEmpty:
		return true
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	case KindOption:
		return v.Option.IsZero()
	case KindRows:
		return len(v.Rows) == 0
	case KindFile:
		return v.File == nil || len(v.File.Data) == 0
	}
	return false
}

// File is an uploaded file together with its display-only preview.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Preview     string
}

// NewFile reads the upload into a data URL preview.
func NewFile(name, contentType string, data []byte) File {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return File{
		Name:        name,
		ContentType: contentType,
		Data:        data,
		Preview:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
}

// Base64 is the bare encoding sent to the backend, without the data URL prefix.
func (f File) Base64() string {
	return base64.StdEncoding.EncodeToString(f.Data)
}
