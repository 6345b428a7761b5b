package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/customercore-backend/api/responses"
	"github.com/angelmondragon/customercore-backend/api/validators"
	product "github.com/angelmondragon/customercore-backend/internal/products"
	pkgerrors "github.com/angelmondragon/customercore-backend/pkg/errors"
	"github.com/angelmondragon/customercore-backend/pkg/logger"
)

const productIDParam = "productId"

type productRequest struct {
	Name           string                 `json:"name" validate:"required,notblank,max=200"`
	Description    *string                `json:"description,omitempty" validate:"omitempty,max=2000"`
	ProductDetails []productDetailRequest `json:"product_details,omitempty" validate:"omitempty,dive"`
}

type productDetailRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
}

func (r productRequest) toInput() (product.ProductInput, error) {
	input := product.ProductInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
	}
	for _, detail := range r.ProductDetails {
		customerID, err := uuid.Parse(strings.TrimSpace(detail.CustomerID))
		if err != nil {
			return product.ProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id")
		}
		input.ProductDetails = append(input.ProductDetails, product.DetailInput{CustomerID: customerID})
	}
	return input, nil
}

// ListProducts returns every product with its details and customers.
func ListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

func GetProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, productIDParam, "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// CreateProduct inserts a product and links the listed customers that exist.
func CreateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "/api/products/"+created.ID.String(), created)
	}
}

// UpdateProduct overwrites name and description. A non-empty
// product_details list replaces the existing links.
func UpdateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, productIDParam, "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func DeleteProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, productIDParam, "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
