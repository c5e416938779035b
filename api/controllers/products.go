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

type addProductBody struct {
	Name     string   `json:"name" validate:"required"`
	Brand    string   `json:"brand" validate:"required"`
	Price    *float64 `json:"price" validate:"required"`
	ImageURL string   `json:"image_url"`
}

type updateProductBody struct {
	Price    *float64 `json:"price"`
	ImageURL *string  `json:"image_url"`
}

// AddProduct appends a product to the list and returns it with the updated list.
func AddProduct(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body addProductBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.AddProduct(ctx, listID, groceries.AddProductInput{
			Name:     body.Name,
			Brand:    body.Brand,
			Price:    *body.Price,
			ImageURL: body.ImageURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, result)
	}
}

// ListProducts returns the list's ordered product sequence.
func ListProducts(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context(), chi.URLParam(r, "listId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// RemoveProduct deletes one embedded product and returns the removed entry.
func RemoveProduct(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		product, err := svc.RemoveProduct(r.Context(), chi.URLParam(r, "listId"), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// UpdateProduct applies the allow-listed partial update (price, image_url).
// Fields outside the allow list, name and brand included, are ignored.
func UpdateProduct(svc groceries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grocery service unavailable"))
			return
		}

		var body updateProductBody
		if err := validators.DecodeJSONBodyAllowUnknown(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "listId"), chi.URLParam(r, "productId"), groceries.ProductPatch{
			Price:    body.Price,
			ImageURL: body.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
