package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/newsapi"
)

const maxPageSize = 100

// TopHeadlines serves GET /v2/top-headlines?category=&pageSize=
func TopHeadlines(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		category, err := domain.ParseCategory(params.Get("category"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, newsapi.ErrorResponse(newsapi.CodeParameterInvalid,
				"The category param is invalid. Valid values: "+categoryList()+"."))
			return
		}

		pageSize, ok := parsePageSize(params.Get("pageSize"))
		if !ok {
			writeJSON(w, http.StatusBadRequest, newsapi.ErrorResponse(newsapi.CodeParameterInvalid,
				"The pageSize param must be a number between 1 and 100."))
			return
		}

		env, err := d.Source.FetchByCategory(r.Context(), category)
		if err != nil {
			writeSourceError(d, w, err)
			return
		}

		d.Logger.Debug("top headlines served",
			logger.String("category", category.String()),
			logger.Int("articles", len(env.Articles)))
		writeJSON(w, http.StatusOK, newsapi.FromEnvelope(page(env, pageSize)))
	}
}

// Everything serves GET /v2/everything?q=&pageSize=
func Everything(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		query := strings.TrimSpace(params.Get("q"))
		if query == "" {
			writeJSON(w, http.StatusBadRequest, newsapi.ErrorResponse(newsapi.CodeParametersMissing,
				"Required parameters are missing. Please set the q parameter."))
			return
		}

		pageSize, ok := parsePageSize(params.Get("pageSize"))
		if !ok {
			writeJSON(w, http.StatusBadRequest, newsapi.ErrorResponse(newsapi.CodeParameterInvalid,
				"The pageSize param must be a number between 1 and 100."))
			return
		}

		env, err := d.Source.Search(r.Context(), query)
		if err != nil {
			writeSourceError(d, w, err)
			return
		}

		d.Logger.Debug("search served",
			logger.String("query", query),
			logger.Int("articles", len(env.Articles)))
		writeJSON(w, http.StatusOK, newsapi.FromEnvelope(page(env, pageSize)))
	}
}

// ArticleByID serves GET /v2/articles/{id} straight from the index.
func ArticleByID(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		a, ok := d.Index.Get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, newsapi.ErrorResponse(newsapi.CodeArticleNotFound,
				"No article matches the id "+id+"."))
			return
		}
		writeJSON(w, http.StatusOK, newsapi.FromEnvelope(domain.NewEnvelope([]domain.Article{a})))
	}
}

// parsePageSize returns 0 (no limit) for an empty value
func parsePageSize(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxPageSize {
		return 0, false
	}
	return n, true
}

// page keeps the first size articles. TotalCount still reports the full result.
func page(env domain.Envelope, size int) domain.Envelope {
	if size > 0 && len(env.Articles) > size {
		env.Articles = env.Articles[:size]
	}
	return env
}

func categoryList() string {
	cats := domain.Categories()
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func writeSourceError(d deps.Deps, w http.ResponseWriter, err error) {
	var se *domain.SourceError
	if errors.As(err, &se) {
		d.Logger.Error("source failed",
			logger.String("source", se.Source),
			logger.String("op", se.Op),
			logger.Error(se.Err))
	} else {
		d.Logger.Error("source failed", logger.Error(err))
	}
	writeJSON(w, http.StatusInternalServerError, newsapi.ErrorResponse(newsapi.CodeUnexpectedError,
		"The news catalog could not answer this request. Please try again later."))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
