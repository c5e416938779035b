package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ssamu04/groceria/api/responses"
	"github.com/ssamu04/groceria/api/validators"
	"github.com/ssamu04/groceria/internal/groceries"
	pkgerrors "github.com/ssamu04/groceria/pkg/errors"
	"github.com/ssamu04/groceria/pkg/logger"
)

type listBody struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ListGroceryLists returns every list, newest first.
func ListGroceryLists(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		lists, err := svc.ListLists(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lists)
	}
}

// GetGroceryList fetches a single list by id.
func GetGroceryList(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		ctx := r.Context()
		listID := chi.URLParam(r, "listId")
		if logg != nil {
			ctx = logg.WithListID(ctx, listID)
		}

		list, err := svc.GetList(ctx, listID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CreateGroceryList creates a list with an empty product sequence.
func CreateGroceryList(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		var body listBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.CreateList(r.Context(), groceries.CreateListInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, list)
	}
}

// UpdateGroceryList replaces both list fields.
func UpdateGroceryList(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		var body listBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.UpdateList(r.Context(), chi.URLParam(r, "listId"), groceries.UpdateListInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// DeleteGroceryList removes the list and returns its prior state.
func DeleteGroceryList(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		list, err := svc.DeleteList(r.Context(), chi.URLParam(r, "listId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
