// Package nav loads the navigation menu shown around every screen.
package nav

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

type Item struct {
	Title  string `yaml:"title" json:"title"`
	Screen string `yaml:"screen" json:"screen"`
	Icon   string `yaml:"icon" json:"icon,omitempty"`
}

type Section struct {
	Title string `yaml:"title" json:"title"`
	Icon  string `yaml:"icon" json:"icon,omitempty"`
	Items []Item `yaml:"items" json:"items"`
}

type Menu struct {
	Sections []Section `yaml:"sections" json:"sections"`
}

// Load reads the menu from path, or the built-in menu when path is empty.
func Load(path string) (Menu, error) {
	if path == "" {
		return Parse(defaultMenu)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Menu{}, errors.Wrap(err, "read nav file")
	}
	return Parse(data)
}

func Parse(data []byte) (Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Menu{}, errors.Wrap(err, "parse nav menu")
	}
	for i, sec := range m.Sections {
		if sec.Title == "" {
			return Menu{}, errors.Errorf("nav section %d has no title", i)
		}
		for _, item := range sec.Items {
			if item.Screen == "" {
				return Menu{}, errors.Errorf("nav item %q in %q has no screen", item.Title, sec.Title)
			}
		}
	}
	return m, nil
}

// Filter drops items whose screen is not registered, and sections left
// empty by that.
func (m Menu) Filter(registered func(screen string) bool) Menu {
	out := Menu{Sections: make([]Section, 0, len(m.Sections))}
	for _, sec := range m.Sections {
		items := make([]Item, 0, len(sec.Items))
		for _, item := range sec.Items {
			if !registered(item.Screen) {
				slog.Warn("nav item points at unknown screen", "section", sec.Title, "screen", item.Screen)
				continue
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			continue
		}
		sec.Items = items
		out.Sections = append(out.Sections, sec)
	}
	return out
}

// Screens lists every screen the menu links to, in menu order.
func (m Menu) Screens() []string {
	var out []string
	for _, sec := range m.Sections {
		for _, item := range sec.Items {
			out = append(out, item.Screen)
		}
	}
	return out
}
