package mw

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/newsdesk/internal/sources/newsapi"
)

// Codes for rejections that happen before a handler runs.
const (
	codeForbidden   = "forbidden"
	codeRateLimited = newsapi.CodeRateLimited
)

// writeError answers with a NewsAPI-style error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(newsapi.ErrorResponse(code, message))
}
