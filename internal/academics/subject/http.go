// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package subject

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// Handler implements subject catalogue endpoints.
type Handler struct {
	subjectService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{subjectService: service}
}

// PublicRoutes returns the unauthenticated read-only router.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	return router
}

// StaffRoutes returns the mutation router. Mounted behind the leader role
// guard: leaders manage their department's subjects.
func (handler *Handler) StaffRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	return router
}

type createRequest struct {
	DepartmentID string `json:"department_id"`
	YearID       string `json:"year_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	yearID := request.URL.Query().Get(FieldYearID)

	v := &validate.Validator{}
	v.Required(FieldYearID, yearID).UUID(FieldYearID, yearID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	subjects, total, err := handler.subjectService.ListSubjects(request.Context(), yearID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, subjects, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	subject, err := handler.subjectService.GetSubject(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldDepartmentID, input.DepartmentID).
		UUID(FieldDepartmentID, input.DepartmentID).
		Required(FieldYearID, input.YearID).
		UUID(FieldYearID, input.YearID).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		MaxLen(FieldDescription, input.Description, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.subjectService.CreateSubject(request.Context(), CreateInput{
		DepartmentID: input.DepartmentID,
		YearID:       input.YearID,
		Name:         input.Name,
		Description:  input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, subject)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		MaxLen(FieldDescription, input.Description, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.subjectService.UpdateSubject(request.Context(), requestutil.ID(request, "id"), input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.subjectService.DeleteSubject(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
