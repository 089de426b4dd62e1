// Package respond writes the JSON envelope shared by every endpoint:
// {"status":"ok","data":...} on success and {"status":"error","error":{...}} on failure.
package respond

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeBodyTooLarge       = "BODY_TOO_LARGE"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL"
)

// MessageInternal is the only text a 500 response carries.
const MessageInternal = "internal server error"

type Envelope struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Status: "ok", Data: data})
}

func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, Envelope{Status: "error", Error: &ErrorBody{Code: code, Message: message}})
}

func ValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	JSON(w, http.StatusBadRequest, Envelope{
		Status: "error",
		Error:  &ErrorBody{Code: CodeValidation, Message: message, Fields: fields},
	})
}

func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeInternal, MessageInternal)
}
