// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package department

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// Handler implements department catalogue endpoints.
type Handler struct {
	departmentService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{departmentService: service}
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

type departmentRequest struct {
	CollegeID string `json:"college_id"`
	Name      string `json:"name"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	collegeID := request.URL.Query().Get(FieldCollegeID)

	v := &validate.Validator{}
	v.Required(FieldCollegeID, collegeID).UUID(FieldCollegeID, collegeID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	departments, total, err := handler.departmentService.ListDepartments(request.Context(), collegeID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, departments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	department, err := handler.departmentService.GetDepartment(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, department)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input departmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldCollegeID, input.CollegeID).
		UUID(FieldCollegeID, input.CollegeID).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	department, err := handler.departmentService.CreateDepartment(request.Context(), input.CollegeID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, department)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input departmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	department, err := handler.departmentService.UpdateDepartment(request.Context(), requestutil.ID(request, "id"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, department)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.departmentService.DeleteDepartment(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
