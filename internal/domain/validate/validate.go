// Package validate checks a form state against an ordered list of rules and
// reports only the first rule that fails.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"hrmconsole/internal/domain/form"
)

// Issue is the first violated rule. Row is the zero-based row index for
// rules evaluated inside a repeatable section, or -1.
type Issue struct {
	Field   string `json:"field"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (i *Issue) Error() string {
	return i.Message
}

// Rule inspects a state and returns nil when it passes.
type Rule func(form.State) *Issue

var checker = newChecker()

func newChecker() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return true
	}); err != nil {
		panic(err)
	}
	return v
}

func fail(field, message string) *Issue {
	return &Issue{Field: field, Row: -1, Message: message}
}

func check(value any, tag string) bool {
	return checker.Var(value, tag) == nil
}

// First runs rules in declared order and stops at the first failure.
func First(s form.State, rules ...Rule) error {
	for _, rule := range rules {
		if issue := rule(s); issue != nil {
			return issue
		}
	}
	return nil
}

func Required(field, label string) Rule {
	return func(s form.State) *Issue {
		if !check(strings.TrimSpace(s.Text(field)), "required") {
			return fail(field, label+" is required")
		}
		return nil
	}
}

func Selected(field, label string) Rule {
	return func(s form.State) *Issue {
		if s.Get(field).IsBlank() {
			return fail(field, "Please select "+label)
		}
		return nil
	}
}

// Letters allows only letters and spaces. Blank values pass.
func Letters(field, label string) Rule {
	return func(s form.State) *Issue {
		value := strings.TrimSpace(s.Text(field))
		if value != "" && !check(value, "alphaspace") {
			return fail(field, label+" must contain only letters and spaces")
		}
		return nil
	}
}

func Email(field, label string) Rule {
	return func(s form.State) *Issue {
		value := strings.TrimSpace(s.Text(field))
		if value != "" && !check(value, "email") {
			return fail(field, label+" must be a valid email address")
		}
		return nil
	}
}

// Digits requires exactly n digits when a value is present.
func Digits(field, label string, n int) Rule {
	return func(s form.State) *Issue {
		value := strings.TrimSpace(s.Text(field))
		if value != "" && !check(value, fmt.Sprintf("number,len=%d", n)) {
			return fail(field, fmt.Sprintf("%s must be %d digits", label, n))
		}
		return nil
	}
}

// Numeric accepts blank values; pair with Required when the field is mandatory.
func Numeric(field, label string) Rule {
	return func(s form.State) *Issue {
		value := strings.TrimSpace(s.Text(field))
		if value == "" {
			return nil
		}
		if _, err := decimal.NewFromString(value); err != nil {
			return fail(field, label+" must be a number")
		}
		return nil
	}
}

// Range requires min <= value <= max when a value is present.
func Range(field, label string, min, max float64) Rule {
	return func(s form.State) *Issue {
		value := strings.TrimSpace(s.Text(field))
		if value == "" {
			return nil
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fail(field, label+" must be a number")
		}
		f, _ := d.Float64()
		if !check(f, fmt.Sprintf("gte=%v,lte=%v", min, max)) {
			return fail(field, fmt.Sprintf("%s must be between %v and %v", label, min, max))
		}
		return nil
	}
}

func MaxLen(field, label string, n int) Rule {
	return func(s form.State) *Issue {
		if !check(s.Text(field), fmt.Sprintf("max=%d", n)) {
			return fail(field, fmt.Sprintf("%s must be at most %d characters", label, n))
		}
		return nil
	}
}

func Pattern(field string, re *regexp.Regexp, message string) Rule {
	return func(s form.State) *Issue {
		value := strings.TrimSpace(s.Text(field))
		if value != "" && !re.MatchString(value) {
			return fail(field, message)
		}
		return nil
	}
}

// Date requires a parseable date when a value is present.
func Date(field, label string) Rule {
	return func(s form.State) *Issue {
		value := strings.TrimSpace(s.Text(field))
		if value == "" {
			return nil
		}
		if _, ok := form.ParseDate(value); !ok {
			return fail(field, label+" must be a valid date")
		}
		return nil
	}
}

// After requires later to be strictly after earlier. Missing dates are left
// to Required.
func After(earlier, later, message string) Rule {
	return func(s form.State) *Issue {
		from, okFrom := s.Date(earlier)
		to, okTo := s.Date(later)
		if okFrom && okTo && !to.After(from) {
			return fail(later, message)
		}
		return nil
	}
}

// NotBefore requires later to be on or after earlier.
func NotBefore(earlier, later, message string) Rule {
	return func(s form.State) *Issue {
		from, okFrom := s.Date(earlier)
		to, okTo := s.Date(later)
		if okFrom && okTo && to.Before(from) {
			return fail(later, message)
		}
		return nil
	}
}

// NotLess requires the numeric field high to be at least low.
func NotLess(low, high, message string) Rule {
	return func(s form.State) *Issue {
		if strings.TrimSpace(s.Text(low)) == "" || strings.TrimSpace(s.Text(high)) == "" {
			return nil
		}
		if s.Decimal(high).LessThan(s.Decimal(low)) {
			return fail(high, message)
		}
		return nil
	}
}

// When applies rules only if cond holds.
func When(cond func(form.State) bool, rules ...Rule) Rule {
	return func(s form.State) *Issue {
		if !cond(s) {
			return nil
		}
		if err := First(s, rules...); err != nil {
			return err.(*Issue)
		}
		return nil
	}
}

// EachRow checks every row of a section in order and reports the first
// invalid row, prefixing its message with the 1-based row number.
func EachRow(section string, rules ...Rule) Rule {
	return func(s form.State) *Issue {
		for idx, row := range s.Rows(section) {
			for _, rule := range rules {
				if issue := rule(row); issue != nil {
					return &Issue{
						Field:   section + "." + issue.Field,
						Row:     idx,
						Message: fmt.Sprintf("Row %d: %s", idx+1, issue.Message),
					}
				}
			}
		}
		return nil
	}
}
