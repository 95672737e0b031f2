// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/platform/validate"
	"github.com/acadex-platform/acadex/pkg/pagination"
)

// # HTTP Layer

// Handler implements account and profile endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the self-service router. The caller mounts it behind the
// authentication guard.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Post("/me/image", handler.uploadImage)
	router.Get("/me/doctor-profile", handler.getMyDoctorProfile)
	router.Put("/me/doctor-profile", handler.saveMyDoctorProfile)
	router.Get("/me/student-profile", handler.getMyStudentProfile)
	router.Put("/me/student-profile", handler.saveMyStudentProfile)

	return router
}

// AdminRoutes returns the administration router. The caller mounts it
// behind the admin role guard.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/active", handler.setActive)
	router.Patch("/{id}/role", handler.assignRole)
	router.Delete("/{id}", handler.delete)
	router.Get("/{id}/doctor-profile", handler.getDoctorProfile)
	router.Put("/{id}/doctor-profile", handler.saveDoctorProfile)
	router.Get("/{id}/student-profile", handler.getStudentProfile)
	router.Put("/{id}/student-profile", handler.saveStudentProfile)

	return router
}

// # Request Payloads

type setActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

type doctorProfileRequest struct {
	CollegeID     string `json:"college_id"`
	AcademicTitle string `json:"academic_title"`
}

type studentProfileRequest struct {
	DepartmentID  string `json:"department_id"`
	YearID        string `json:"year_id"`
	StudentNumber string `json:"student_number"`
}

// # Self-Service Endpoints

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
uploadImage replaces the caller's profile picture.

POST /api/v1/accounts/me/image (multipart/form-data, field "image")

Response:
  - 200: The stored object key
  - 400: Empty file, oversized file, or unsupported content type
*/
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.ParseMultipart(writer, request, FieldImage, constants.MaxImageBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := request.FormFile(FieldImage)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get(constants.HeaderContentType)

	v := &validate.Validator{}
	v.FileSize(FieldImage, header.Size, constants.MaxImageBytes).
		ContentType(FieldImage, contentType, constants.ImageContentTypes)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	key, err := handler.accountService.UploadProfileImage(request.Context(), userID, file, header.Size, contentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"image_key": key})
}

func (handler *Handler) getMyDoctorProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.respondDoctorProfile(writer, request, userID)
}

func (handler *Handler) saveMyDoctorProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.writeDoctorProfile(writer, request, userID)
}

func (handler *Handler) getMyStudentProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.respondStudentProfile(writer, request, userID)
}

func (handler *Handler) saveMyStudentProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.writeStudentProfile(writer, request, userID)
}

// # Administration Endpoints

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.accountService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetUser(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	var input setActiveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.IsActive == nil {
		respond.Error(writer, request, validate.RequiredError(FieldIsActive, "is required"))
		return
	}

	err := handler.accountService.SetActive(request.Context(), requestutil.ID(request, "id"), *input.IsActive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) assignRole(writer http.ResponseWriter, request *http.Request) {
	var input assignRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	role, ok := sec.ParseRole(input.Role)
	if !ok {
		respond.Error(writer, request, apperr.ValidationError("Unknown role", apperr.FieldError{
			Field:   FieldRole,
			Message: "must be one of: admin, leader, doctor, student",
		}))
		return
	}

	err := handler.accountService.AssignRole(request.Context(), requestutil.ID(request, "id"), role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.DeleteUser(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getDoctorProfile(writer http.ResponseWriter, request *http.Request) {
	handler.respondDoctorProfile(writer, request, requestutil.ID(request, "id"))
}

func (handler *Handler) saveDoctorProfile(writer http.ResponseWriter, request *http.Request) {
	handler.writeDoctorProfile(writer, request, requestutil.ID(request, "id"))
}

func (handler *Handler) getStudentProfile(writer http.ResponseWriter, request *http.Request) {
	handler.respondStudentProfile(writer, request, requestutil.ID(request, "id"))
}

func (handler *Handler) saveStudentProfile(writer http.ResponseWriter, request *http.Request) {
	handler.writeStudentProfile(writer, request, requestutil.ID(request, "id"))
}

// # Shared Profile Logic

func (handler *Handler) respondDoctorProfile(writer http.ResponseWriter, request *http.Request, userID string) {
	profile, err := handler.accountService.GetDoctorProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) writeDoctorProfile(writer http.ResponseWriter, request *http.Request, userID string) {
	var input doctorProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldCollegeID, input.CollegeID).
		UUID(FieldCollegeID, input.CollegeID).
		Required(FieldAcademicTitle, input.AcademicTitle).
		MaxLen(FieldAcademicTitle, input.AcademicTitle, 100)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.SaveDoctorProfile(request.Context(), userID, DoctorProfileInput{
		CollegeID:     input.CollegeID,
		AcademicTitle: input.AcademicTitle,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) respondStudentProfile(writer http.ResponseWriter, request *http.Request, userID string) {
	profile, err := handler.accountService.GetStudentProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) writeStudentProfile(writer http.ResponseWriter, request *http.Request, userID string) {
	var input studentProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldDepartmentID, input.DepartmentID).
		UUID(FieldDepartmentID, input.DepartmentID).
		Required(FieldYearID, input.YearID).
		UUID(FieldYearID, input.YearID).
		Required(FieldStudentNumber, input.StudentNumber).
		MaxLen(FieldStudentNumber, input.StudentNumber, 50)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.SaveStudentProfile(request.Context(), userID, StudentProfileInput{
		DepartmentID:  input.DepartmentID,
		YearID:        input.YearID,
		StudentNumber: input.StudentNumber,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
