package form

// Option is one choice offered by a selector.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
}

// IsZero reports whether nothing was selected.
func (o Option) IsZero() bool {
	return o.Value == ""
}

// FindOption returns the option whose value matches.
func FindOption(options []Option, value string) (Option, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
