// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package university

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// Handler implements university catalogue endpoints.
type Handler struct {
	universityService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{universityService: service}
}

// PublicRoutes returns the unauthenticated read-only router.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{identifier}", handler.get)
	return router
}

// AdminRoutes returns the mutation router. The caller mounts it behind the
// admin role guard.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Post("/{id}/logo", handler.uploadLogo)
	router.Delete("/{id}", handler.delete)
	return router
}

type universityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	universities, total, err := handler.universityService.ListUniversities(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, universities, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	university, err := handler.universityService.GetUniversity(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, university)
}

func (handler *Handler) decodeInput(writer http.ResponseWriter, request *http.Request) (CreateInput, bool) {
	var input universityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return CreateInput{}, false
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		MaxLen(FieldDescription, input.Description, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return CreateInput{}, false
	}

	return CreateInput{Name: input.Name, Description: input.Description}, true
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	input, ok := handler.decodeInput(writer, request)
	if !ok {
		return
	}

	university, err := handler.universityService.CreateUniversity(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, university)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	input, ok := handler.decodeInput(writer, request)
	if !ok {
		return
	}

	university, err := handler.universityService.UpdateUniversity(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, university)
}

func (handler *Handler) uploadLogo(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, FieldLogo, constants.MaxImageBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := request.FormFile(FieldLogo)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Logo file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get(constants.HeaderContentType)

	v := &validate.Validator{}
	v.FileSize(FieldLogo, header.Size, constants.MaxImageBytes).
		ContentType(FieldLogo, contentType, constants.ImageContentTypes)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	key, err := handler.universityService.UploadLogo(request.Context(), requestutil.ID(request, "id"), file, header.Size, contentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"logo_key": key})
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.universityService.DeleteUniversity(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
