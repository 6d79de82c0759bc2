package handler

import (
	"encoding/json"
	"net/http"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/usecase"
	"smart-clinic-backend/pkg/response"
	"smart-clinic-backend/pkg/validator"
)

type AdminHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAdminHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokenResp, err := h.authUsecase.LoginAdmin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokenResp)
}
