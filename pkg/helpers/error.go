package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"
)

// Error is a struct that represents an error
type Error struct {
	Title string `json:"title"`
	Err   any    `json:"details"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("Error: [%s] %+v", e.Title, e.Err)
	}
	return fmt.Sprintf("Error: [%s]", e.Title)
}

// ErrorResponse is a struct that represents an error response in JSON from REST API
type ErrorResponse struct {
	Error *Error `json:"error"`
}

// NewError creates a new Error with a title
func NewError(title string) *Error {
	return &Error{Title: title}
}

// NewErrorDetails creates a new Error with a title and details
func NewErrorDetails(title string, err any) *Error {
	return &Error{Title: title, Err: err}
}

// NewErrorFromError creates a new Error from an error
func NewErrorFromError(err error) *Error {
	if err == nil {
		return nil
	}

	if pbErr, ok := err.(*Error); ok {
		return pbErr
	}

	if jsonTypeError, ok := err.(*json.UnmarshalTypeError); ok {
		return &Error{Title: "json_type_error", Err: formatJSONUnmarshalTypeError(jsonTypeError)}
	}
	if jsonSyntaxError, ok := err.(*json.SyntaxError); ok {
		return &Error{Title: "json_syntax_error", Err: map[string]any{"position": jsonSyntaxError.Offset, "error": jsonSyntaxError.Error()}}
	}
	if validatorErr, ok := err.(validator.ValidationErrors); ok {
		return &Error{Title: "validation_error", Err: formatValidationErrors(validatorErr)}
	}

	return &Error{Title: err.Error()}
}

func formatValidationErrors(err validator.ValidationErrors) []map[string]any {
	v := make([]map[string]any, 0)
	for _, fieldError := range err {
		splitNamespace := strings.SplitN(fieldError.Namespace(), ".", 2)

		v = append(v, map[string]any{
			"field":            fieldError.Field(),
			"namespace":        splitNamespace[len(splitNamespace)-1],
			"type":             fieldError.Kind().String(),
			"validation":       fieldError.Tag(),
			"validation_param": fieldError.Param(),
		})
	}

	sort.SliceStable(v, func(i, j int) bool {
		return fmt.Sprintf("%s", v[i]["namespace"]) < fmt.Sprintf("%s", v[j]["namespace"])
	})

	return v
}

func formatJSONUnmarshalTypeError(err *json.UnmarshalTypeError) []map[string]any {
	return []map[string]any{
		{
			"field":    err.Field,
			"expected": err.Type.Kind().String(),
			"actual":   err.Value,
		},
	}
}

// Problem404 is the problem body served for unknown routes
func Problem404() *problems.DefaultProblem {
	return problems.NewDetailedProblem(http.StatusNotFound, "Not a valid endpoint")
}
