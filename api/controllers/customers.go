package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/customercore-backend/api/responses"
	"github.com/angelmondragon/customercore-backend/api/validators"
	customer "github.com/angelmondragon/customercore-backend/internal/customers"
	pkgerrors "github.com/angelmondragon/customercore-backend/pkg/errors"
	"github.com/angelmondragon/customercore-backend/pkg/logger"
)

const customerIDParam = "customerId"

type customerRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Email       string  `json:"email" validate:"required,email,max=320"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
	TotalOrders int     `json:"total_orders" validate:"min=0"`
}

func (r customerRequest) toInput() customer.CustomerInput {
	return customer.CustomerInput{
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.TrimSpace(r.Email),
		Address:     r.Address,
		TotalOrders: r.TotalOrders,
	}
}

// ListCustomers returns every customer.
func ListCustomers(svc customer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
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

// GetCustomer returns a single customer by id.
func GetCustomer(svc customer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, customerIDParam, "customer")
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

// CreateCustomer validates the payload and inserts a new customer.
func CreateCustomer(svc customer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload customerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "/api/customers/"+created.ID.String(), created)
	}
}

// UpdateCustomer replaces every mutable field of an existing customer.
func UpdateCustomer(svc customer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, customerIDParam, "customer")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// DeleteCustomer removes a customer that no product detail references.
func DeleteCustomer(svc customer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, customerIDParam, "customer")
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
