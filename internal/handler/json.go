package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"trivia-api/internal/middleware"
)

// maxBodyBytes caps request bodies read by decodeJSON.
const maxBodyBytes = 1 << 20

// flexInt decodes a JSON number or a string holding an integer. Browser
// clients often send form values as strings.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = flexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) *middleware.AppError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return middleware.BadRequest(fmt.Errorf("decode request body: %w", err))
	}
	return nil
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) *middleware.AppError {
	body, err := json.Marshal(v)
	if err != nil {
		return &middleware.AppError{Error: err, Message: middleware.MsgInternal, Code: http.StatusInternalServerError}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

// pageParam reads the 1-based page query parameter. An absent parameter
// means the first page.
func pageParam(r *http.Request) (int, *middleware.AppError) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middleware.BadRequest(fmt.Errorf("page %q: %w", raw, err))
	}
	if page < 1 {
		return 0, middleware.BadRequest(errors.New("page must be at least 1"))
	}
	return page, nil
}

// idParam parses a numeric path parameter.
func idParam(raw string) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, middleware.BadRequest(fmt.Errorf("id %q: %w", raw, err))
	}
	return id, nil
}
