// AngelaMos | 2026
// respond.go

package core

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
)

// SuccessEnvelope wraps every successful response.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorEnvelope wraps every failure response.
type ErrorEnvelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Pagination is the metadata block attached to list responses.
type Pagination struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

func NewPagination(page, perPage, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{
		Total:       total,
		Page:        page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

type pageEnvelope struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(
	w http.ResponseWriter,
	message string,
	data any,
	p Pagination,
) {
	writeJSON(w, http.StatusOK, pageEnvelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: p,
	})
}

// Error resolves err to an AppError and writes the error envelope.
// Internal errors are logged and sanitized; the cause never leaves
// the process.
func Error(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	if appErr.Kind == KindInternal {
		slog.Error("internal error", "error", appErr.Err)
	}

	writeJSON(w, appErr.Kind.HTTPStatus(), ErrorEnvelope{
		Status:  "error",
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// JSONError writes an explicit AppError without resolution.
func JSONError(w http.ResponseWriter, appErr *AppError) {
	writeJSON(w, appErr.Kind.HTTPStatus(), ErrorEnvelope{
		Status:  "error",
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
