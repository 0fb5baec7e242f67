// Package api implements the HTTP handlers, request/response models and
// the error-to-problem-document mapping for the festival API.
package api
