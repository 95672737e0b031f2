// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package questionbank

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/validate"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # HTTP Layer

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler implements question bank endpoints.
type Handler struct {
	bankService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{bankService: service}
}

// Routes returns the authenticated reader router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBanks)
	router.Get("/{id}", handler.getBank)
	router.Get("/{id}/questions", handler.listQuestions)
	router.Get("/{id}/export", handler.export)
	router.Get("/questions/{questionID}", handler.getQuestion)

	return router
}

// StaffRoutes returns the mutation router. Mounted behind the doctor
// role guard.
func (handler *Handler) StaffRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createBank)
	router.Put("/{id}", handler.updateBank)
	router.Delete("/{id}", handler.deleteBank)

	router.Post("/{id}/questions", handler.createQuestion)
	router.Post("/{id}/import", handler.importExcel)
	router.Put("/questions/{questionID}", handler.updateQuestion)
	router.Delete("/questions/{questionID}", handler.deleteQuestion)

	return router
}

type createBankRequest struct {
	SubjectID string `json:"subject_id"`
	BankInput
}

func (handler *Handler) listBanks(writer http.ResponseWriter, request *http.Request) {
	subjectID := request.URL.Query().Get(FieldSubjectID)

	v := &validate.Validator{}
	v.Required(FieldSubjectID, subjectID).UUID(FieldSubjectID, subjectID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	banks, total, err := handler.bankService.ListBanks(request.Context(), subjectID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, banks, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getBank(writer http.ResponseWriter, request *http.Request) {
	bank, err := handler.bankService.GetBank(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bank)
}

func (handler *Handler) createBank(writer http.ResponseWriter, request *http.Request) {
	var input createBankRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldSubjectID, input.SubjectID).
		UUID(FieldSubjectID, input.SubjectID).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLen)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bank, err := handler.bankService.CreateBank(request.Context(), input.SubjectID, input.BankInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, bank)
}

func (handler *Handler) updateBank(writer http.ResponseWriter, request *http.Request) {
	var input BankInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxNameLen)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bank, err := handler.bankService.UpdateBank(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bank)
}

func (handler *Handler) deleteBank(writer http.ResponseWriter, request *http.Request) {
	if err := handler.bankService.DeleteBank(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listQuestions(writer http.ResponseWriter, request *http.Request) {
	questions, err := handler.bankService.ListQuestions(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, questions)
}

func (handler *Handler) getQuestion(writer http.ResponseWriter, request *http.Request) {
	question, err := handler.bankService.GetQuestion(request.Context(), requestutil.ID(request, "questionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, question)
}

func (handler *Handler) createQuestion(writer http.ResponseWriter, request *http.Request) {
	var input QuestionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	question, err := handler.bankService.CreateQuestion(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, question)
}

func (handler *Handler) updateQuestion(writer http.ResponseWriter, request *http.Request) {
	var input QuestionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	question, err := handler.bankService.UpdateQuestion(request.Context(), requestutil.ID(request, "questionID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, question)
}

func (handler *Handler) deleteQuestion(writer http.ResponseWriter, request *http.Request) {
	if err := handler.bankService.DeleteQuestion(request.Context(), requestutil.ID(request, "questionID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
importExcel bulk-loads questions from an uploaded .xlsx workbook.

POST /api/v1/question-banks/{id}/import (multipart/form-data)

Response:
  - 200: {"imported": n}
  - 400: Malformed workbook or invalid rows (row numbers in details)
  - 404: Bank not found
*/
func (handler *Handler) importExcel(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, FieldFile, constants.MaxDocumentBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	workbook, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Workbook file is required"))
		return
	}
	defer workbook.Close()

	v := &validate.Validator{}
	v.FileSize(FieldFile, header.Size, constants.MaxDocumentBytes)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	imported, err := handler.bankService.ImportExcel(request.Context(), requestutil.ID(request, "id"), workbook)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"imported": imported})
}

/*
export streams a bank's questions as an .xlsx workbook.

GET /api/v1/question-banks/{id}/export

Response:
  - 200: .xlsx bytes, named after the bank
  - 404: Bank not found
*/
func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	bankID := requestutil.ID(request, "id")

	bank, err := handler.bankService.GetBank(request.Context(), bankID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderContentType, xlsxContentType)
	writer.Header().Set(constants.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", bank.Name+".xlsx"))

	if err := handler.bankService.ExportExcel(request.Context(), bankID, writer); err != nil {
		respond.Error(writer, request, err)
		return
	}
}
