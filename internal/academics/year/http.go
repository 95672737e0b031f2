// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package year

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
)

// Handler implements study year endpoints.
type Handler struct {
	yearService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{yearService: service}
}

// PublicRoutes returns the unauthenticated read-only router.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	return router
}

// AdminRoutes returns the mutation router mounted behind the admin guard.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	return router
}

type yearRequest struct {
	DepartmentID string `json:"department_id"`
	Number       int    `json:"number"`
	Name         string `json:"name"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	departmentID := request.URL.Query().Get(FieldDepartmentID)

	v := &validate.Validator{}
	v.Required(FieldDepartmentID, departmentID).UUID(FieldDepartmentID, departmentID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	years, err := handler.yearService.ListYears(request.Context(), departmentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, years)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	year, err := handler.yearService.GetYear(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, year)
}

func (handler *Handler) validate(input yearRequest, isCreate bool) error {
	v := &validate.Validator{}

	if isCreate {
		v.Required(FieldDepartmentID, input.DepartmentID).
			UUID(FieldDepartmentID, input.DepartmentID)
	}

	v.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Range(FieldNumber, input.Number, 1, 10)

	return v.Err()
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input yearRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.validate(input, true); err != nil {
		respond.Error(writer, request, err)
		return
	}

	year, err := handler.yearService.CreateYear(request.Context(), input.DepartmentID, input.Number, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, year)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input yearRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.validate(input, false); err != nil {
		respond.Error(writer, request, err)
		return
	}

	year, err := handler.yearService.UpdateYear(request.Context(), requestutil.ID(request, "id"), input.Number, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, year)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.yearService.DeleteYear(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
