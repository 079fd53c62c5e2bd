package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissingData is returned when a response carries no data to decode.
var ErrMissingData = errors.New("graphql response missing data")

// Error is a top-level GraphQL error.
type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// ResponseError reports top-level GraphQL errors for one operation.
type ResponseError struct {
	Operation string
	Errors    []Error
}

func (e *ResponseError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msg := strings.TrimSpace(ge.Message)
		if msg == "" {
			continue
		}
		if len(ge.Path) > 0 {
			msg = fmt.Sprintf("%s (path: %v)", msg, ge.Path)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s: unknown graphql error", e.Operation)
	}
	return fmt.Sprintf("%s: %s", e.Operation, strings.Join(parts, "; "))
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %s: %s", e.Status, e.Body)
}

// UserError is a validation error returned inside a mutation payload.
type UserError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// UserErrorsError reports the user errors of every rejected mutation field.
type UserErrorsError struct {
	Operation string
	Errors    []UserError
}

func (e *UserErrorsError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, ue := range e.Errors {
		msg := strings.TrimSpace(ue.Message)
		if msg == "" {
			msg = ue.Code
		}
		if ue.Field != "" {
			msg = fmt.Sprintf("%s: %s", ue.Field, msg)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s failed with user errors", e.Operation)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, strings.Join(parts, "; "))
}

// userErrors collects the "errors" list of every mutation field in data.
func userErrors(operation string, data json.RawMessage) error {
	if len(data) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []UserError
	for _, name := range names {
		var payload struct {
			Errors []UserError `json:"errors"`
		}
		if err := json.Unmarshal(fields[name], &payload); err != nil {
			continue
		}
		all = append(all, payload.Errors...)
	}
	if len(all) == 0 {
		return nil
	}
	return &UserErrorsError{Operation: operation, Errors: all}
}
