// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package permission

import (
	stdctx "context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	requestutil "github.com/acadex-platform/acadex/internal/platform/request"
	"github.com/acadex-platform/acadex/internal/platform/respond"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/platform/validate"
	"github.com/acadex-platform/acadex/internal/users/auth"
)

// # HTTP Layer

// UserFinder resolves accounts so grant endpoints can validate the target
// user and discover their role. Satisfied by the auth user repository.
type UserFinder interface {
	FindByID(context stdctx.Context, id string) (*auth.User, error)
}

// Handler implements permission administration endpoints.
type Handler struct {
	permissionService *Service
	users             UserFinder
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, users UserFinder) *Handler {
	return &Handler{permissionService: service, users: users}
}

// Routes returns a [chi.Router] with permission administration routes.
// The caller is expected to mount it behind the admin role guard.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Delete("/{id}", handler.delete)

	router.Get("/roles/{role}", handler.listForRole)
	router.Post("/roles/{role}/{permissionID}", handler.grantToRole)
	router.Delete("/roles/{role}/{permissionID}", handler.revokeFromRole)

	router.Get("/users/{userID}", handler.listEffective)
	router.Post("/users/{userID}/{permissionID}", handler.grantToUser)
	router.Delete("/users/{userID}/{permissionID}", handler.revokeFromUser)

	return router
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	permissions, err := handler.permissionService.ListPermissions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, permissions)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	permission, err := handler.permissionService.GetPermission(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, permission)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		MaxLen(FieldDescription, input.Description, 500)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	permission, err := handler.permissionService.CreatePermission(request.Context(), CreateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, permission)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.permissionService.DeletePermission(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Role Grant Endpoints

func (handler *Handler) listForRole(writer http.ResponseWriter, request *http.Request) {
	role, err := pathRole(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	permissions, err := handler.permissionService.ListForRole(request.Context(), role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, permissions)
}

func (handler *Handler) grantToRole(writer http.ResponseWriter, request *http.Request) {
	role, err := pathRole(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.permissionService.GrantToRole(request.Context(), role, requestutil.ID(request, "permissionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) revokeFromRole(writer http.ResponseWriter, request *http.Request) {
	role, err := pathRole(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.permissionService.RevokeFromRole(request.Context(), role, requestutil.ID(request, "permissionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # User Grant Endpoints

func (handler *Handler) listEffective(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.ID(request, "userID")

	user, err := handler.users.FindByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	permissions, err := handler.permissionService.ListEffective(request.Context(), user.ID, user.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, permissions)
}

func (handler *Handler) grantToUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.ID(request, "userID")

	if _, err := handler.users.FindByID(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.permissionService.GrantToUser(request.Context(), userID, requestutil.ID(request, "permissionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) revokeFromUser(writer http.ResponseWriter, request *http.Request) {
	err := handler.permissionService.RevokeFromUser(
		request.Context(),
		requestutil.ID(request, "userID"),
		requestutil.ID(request, "permissionID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// pathRole parses and validates the {role} URL parameter.
func pathRole(request *http.Request) (sec.UserRole, error) {
	role, ok := sec.ParseRole(chi.URLParam(request, "role"))
	if !ok {
		return "", apperr.ValidationError("Unknown role", apperr.FieldError{
			Field:   FieldRole,
			Message: "must be one of: admin, leader, doctor, student",
		})
	}
	return role, nil
}
