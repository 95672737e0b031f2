// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package college

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// Handler implements college catalogue endpoints.
type Handler struct {
	collegeService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{collegeService: service}
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

type createRequest struct {
	UniversityID string `json:"university_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	universityID := request.URL.Query().Get(FieldUniversityID)

	v := &validate.Validator{}
	v.Required(FieldUniversityID, universityID).UUID(FieldUniversityID, universityID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	colleges, total, err := handler.collegeService.ListColleges(request.Context(), universityID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, colleges, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	college, err := handler.collegeService.GetCollege(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, college)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldUniversityID, input.UniversityID).
		UUID(FieldUniversityID, input.UniversityID).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		MaxLen(FieldDescription, input.Description, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	college, err := handler.collegeService.CreateCollege(request.Context(), CreateInput{
		UniversityID: input.UniversityID,
		Name:         input.Name,
		Description:  input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, college)
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

	college, err := handler.collegeService.UpdateCollege(request.Context(), requestutil.ID(request, "id"), input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, college)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.collegeService.DeleteCollege(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
