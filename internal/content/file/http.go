// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package file

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
)

// # HTTP Layer

// Handler implements course document endpoints.
type Handler struct {
	fileService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{fileService: service}
}

// Routes returns the authenticated reader router: listing, metadata,
// download, and rating.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/download", handler.download)
	router.Post("/{id}/rating", handler.rate)

	return router
}

// StaffRoutes returns the mutation router. Mounted behind the doctor role
// guard.
func (handler *Handler) StaffRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.upload)
	router.Delete("/{id}", handler.delete)

	return router
}

type rateRequest struct {
	Score int `json:"score"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	curriculumID := request.URL.Query().Get(FieldCurriculumID)

	v := &validate.Validator{}
	v.Required(FieldCurriculumID, curriculumID).UUID(FieldCurriculumID, curriculumID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	files, err := handler.fileService.ListFiles(request.Context(), curriculumID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, files)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	file, err := handler.fileService.GetFile(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, file)
}

/*
upload stores a new course document.

POST /api/v1/files (multipart/form-data)

Request:
  - Form field "curriculum_id": owning curriculum UUID
  - Form field "file": the document (non-empty, max 10 MiB, PDF/DOC/DOCX/TXT)

Response:
  - 201: File: Created metadata
  - 400: Empty file, oversized file, or unsupported content type
  - 404: Curriculum not found
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.ParseMultipart(writer, request, FieldFile, constants.MaxDocumentBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	curriculumID := request.FormValue(FieldCurriculumID)

	document, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Document file is required"))
		return
	}
	defer document.Close()

	contentType := header.Header.Get(constants.HeaderContentType)

	// All upload constraints are enforced here, before the service runs.
	v := &validate.Validator{}
	v.Required(FieldCurriculumID, curriculumID).
		UUID(FieldCurriculumID, curriculumID).
		FileSize(FieldFile, header.Size, constants.MaxDocumentBytes).
		ContentType(FieldFile, contentType, constants.DocumentContentTypes)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.fileService.Upload(request.Context(), UploadInput{
		CurriculumID: curriculumID,
		UploaderID:   userID,
		Name:         header.Filename,
		Reader:       document,
		SizeBytes:    header.Size,
		ContentType:  contentType,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, file)
}

/*
download streams a stored document to the client.

GET /api/v1/files/{id}/download

Response:
  - 200: Raw document bytes with original name and content type
  - 404: File not found
*/
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	file, reader, err := handler.fileService.Download(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer reader.Close()

	writer.Header().Set(constants.HeaderContentType, file.ContentType)
	writer.Header().Set(constants.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	writer.WriteHeader(http.StatusOK)

	// Headers are already written; a failed copy means the client went away.
	_, _ = io.Copy(writer, reader)
}

func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Range(FieldScore, input.Score, MinScore, MaxScore)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.fileService.RateFile(request.Context(), requestutil.ID(request, "id"), userID, input.Score)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.fileService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
