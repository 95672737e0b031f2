// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package curriculum

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
)

// Handler implements curriculum endpoints.
type Handler struct {
	curriculumService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{curriculumService: service}
}

// PublicRoutes returns the unauthenticated read-only router.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	return router
}

// StaffRoutes returns the mutation router. Mounted behind the doctor role
// guard: teaching staff manage their subjects' curricula.
func (handler *Handler) StaffRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	return router
}

type createRequest struct {
	SubjectID   string `json:"subject_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	subjectID := request.URL.Query().Get(FieldSubjectID)

	v := &validate.Validator{}
	v.Required(FieldSubjectID, subjectID).UUID(FieldSubjectID, subjectID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	curricula, err := handler.curriculumService.ListCurricula(request.Context(), subjectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, curricula)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	curriculum, err := handler.curriculumService.GetCurriculum(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, curriculum)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldSubjectID, input.SubjectID).
		UUID(FieldSubjectID, input.SubjectID).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		MaxLen(FieldDescription, input.Description, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	curriculum, err := handler.curriculumService.CreateCurriculum(request.Context(), CreateInput{
		SubjectID:   input.SubjectID,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, curriculum)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		MaxLen(FieldDescription, input.Description, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	curriculum, err := handler.curriculumService.UpdateCurriculum(request.Context(), requestutil.ID(request, "id"), input.Title, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, curriculum)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.curriculumService.DeleteCurriculum(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
