// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "tglang/internal/platform/net/http"
	"tglang/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// JSONOptions bounds and loosens body parsing
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON decodes and validates T from the body before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...JSONOptions) Handler {
	return phttp.JSONHandler(fn, opts...)
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.NoBodyHandler(fn)
}

// Handle lets you directly adapt a Response-returning function if you prefer
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// Validate runs struct validation, for inputs assembled from the query string
func Validate(v any) error { return bind.Struct(v) }

// Param returns a path parameter such as {id}
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// RegisterValidation adds a custom validator tag; message may use {0} for the field
func RegisterValidation(tag, message string, fn func(bind.FieldLevel) bool) error {
	return bind.RegisterValidation(tag, message, fn)
}

// FieldLevel is what custom validator tags receive
type FieldLevel = bind.FieldLevel

// Parse decodes and validates a JSON body, for handlers that need more than JSON[T] offers
func Parse[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	return bind.ParseJSON[T](r, opts...)
}
