package bootstrap

import (
	"errors"
	"fmt"
)

// MissingTemplateError indicates the config template required to derive the
// environment file does not exist. Bootstrap cannot proceed without it.
type MissingTemplateError struct {
	Path string
}

// Error returns the error message.
func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("config template not found: %s", e.Path)
}

// IsMissingTemplateError checks if an error is a MissingTemplateError.
func IsMissingTemplateError(err error) bool {
	var mte *MissingTemplateError
	return errors.As(err, &mte)
}
