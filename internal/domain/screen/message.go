package screen

import (
	"github.com/go-faster/errors"

	"hrmconsole/internal/domain/validate"
	"hrmconsole/internal/platform/backend"
)

// Message maps any failure to the single line shown in a toast.
func Message(err error) string {
	var issue *validate.Issue
	if errors.As(err, &issue) {
		return issue.Message
	}
	var berr *backend.Error
	if errors.As(err, &berr) {
		return berr.Message
	}
	return err.Error()
}
