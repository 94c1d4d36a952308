package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Path addresses a top-level field or a field inside one row of a section.
type Path struct {
	Field string
	Index int
	Sub   string
}

func Field(name string) Path {
	return Path{Field: name, Index: -1}
}

func RowField(section string, index int, name string) Path {
	return Path{Field: section, Index: index, Sub: name}
}

func (p Path) InRow() bool {
	return p.Index >= 0
}

func (p Path) String() string {
	if !p.InRow() {
		return p.Field
	}
	return fmt.Sprintf("%s[%d].%s", p.Field, p.Index, p.Sub)
}

// ParsePath accepts "name" or "section[2].name".
func ParsePath(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Path{}, errors.New("empty field path")
	}
	open := strings.IndexByte(raw, '[')
	if open < 0 {
		if strings.ContainsAny(raw, "].") {
			return Path{}, errors.Errorf("malformed field path %q", raw)
		}
		return Field(raw), nil
	}
	closeIdx := strings.IndexByte(raw, ']')
	if closeIdx < open || open == 0 {
		return Path{}, errors.Errorf("malformed field path %q", raw)
	}
	index, err := strconv.Atoi(raw[open+1 : closeIdx])
	if err != nil || index < 0 {
		return Path{}, errors.Errorf("malformed row index in %q", raw)
	}
	rest := raw[closeIdx+1:]
	if !strings.HasPrefix(rest, ".") || len(rest) < 2 {
		return Path{}, errors.Errorf("missing row field in %q", raw)
	}
	return RowField(raw[:open], index, rest[1:]), nil
}
