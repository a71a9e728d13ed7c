package dto

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ToResponse(errs []ValidationError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

var isrcRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}[0-9]{7}$`)

func validateISRC(isrc string) []ValidationError {
	var errs []ValidationError
	if isrc != "" && !isrcRegex.MatchString(strings.ToUpper(isrc)) {
		errs = append(errs, ValidationError{Field: "isrc", Message: "invalid ISRC format (expected: CC-XXX-YY-NNNNN)"})
	}
	return errs
}
