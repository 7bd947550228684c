// Package response writes the JSON bodies of the member API. Every body has the shape
// {"data": ..., "error": ..., "meta": ...}; exactly one of data and error is set.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
}

// PageMeta adds the paging position and the total row count to Meta.
type PageMeta struct {
	Meta
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the body of every member API response. M is Meta or PageMeta.
type Envelope[M any] struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
	Meta  M      `json:"meta"`
}

// NewMeta stamps the current time. An empty requestID is replaced by a fresh UUID.
func NewMeta(requestID string) Meta {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return Meta{
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func write[M any](w http.ResponseWriter, status int, env Envelope[M]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "status", status, "error", err)
	}
}

func Success(w http.ResponseWriter, status int, data any, requestID string) {
	write(w, status, Envelope[Meta]{Data: data, Meta: NewMeta(requestID)})
}

// SuccessList writes one page of rows. total counts every row across all pages.
func SuccessList(w http.ResponseWriter, status int, data any, total, page, size int, requestID string) {
	write(w, status, Envelope[PageMeta]{
		Data: data,
		Meta: PageMeta{Meta: NewMeta(requestID), Total: total, Page: page, Size: size},
	})
}

// Err writes an error body. code is a stable machine-readable value such as INVALID_PAGE.
func Err(w http.ResponseWriter, status int, code string, message string, requestID string) {
	write(w, status, Envelope[Meta]{
		Error: &Error{Code: code, Message: message},
		Meta:  NewMeta(requestID),
	})
}
