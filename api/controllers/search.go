package controllers

import (
	"net/http"
	"strings"

	"github.com/ssamu04/groceria/api/responses"
	"github.com/ssamu04/groceria/api/validators"
	"github.com/ssamu04/groceria/internal/catalog"
	pkgerrors "github.com/ssamu04/groceria/pkg/errors"
	"github.com/ssamu04/groceria/pkg/logger"
)

const missingQueryMessage = "Query parameter 'q' is required."

// searchErrorBody is the search endpoint's documented failure shape. The
// endpoint predates the consolidated {message} bodies and keeps its
// {error} contract, raw upstream text included.
type searchErrorBody struct {
	Error string `json:"error"`
}

// SearchCatalog proxies a free-text query to the external catalog.
func SearchCatalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteJSON(w, http.StatusInternalServerError, searchErrorBody{Error: "catalog service unavailable"})
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			responses.WriteJSON(w, http.StatusBadRequest, searchErrorBody{Error: missingQueryMessage})
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			writeSearchError(r, logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "page_size", 0, 1, 1000)
		if err != nil {
			writeSearchError(r, logg, w, err)
			return
		}

		result, err := svc.Search(r.Context(), catalog.SearchParams{
			Query:    query,
			Page:     page,
			PageSize: pageSize,
			Sort:     strings.TrimSpace(r.URL.Query().Get("sort")),
		})
		if err != nil {
			writeSearchError(r, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func writeSearchError(r *http.Request, logg *logger.Logger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Server Error"
	if typed := pkgerrors.As(err); typed != nil {
		if typed.Code() == pkgerrors.CodeValidation {
			status = http.StatusBadRequest
		}
		if m := typed.Message(); m != "" {
			msg = m
		}
		if cause := typed.Unwrap(); cause != nil {
			msg = msg + ": " + cause.Error()
		}
	}
	if logg != nil {
		logg.Error(r.Context(), "catalog.search_failed", err)
	}
	responses.WriteJSON(w, status, searchErrorBody{Error: msg})
}
