// Package redeem реализует HTTP-обработчик активации лицензионного ключа.
package redeem

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/trainer-memberships/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/response"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Handler обрабатывает запросы на активацию ключа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает активацию лицензии.
type Service interface {
	Redeem(ctx context.Context, trainerID, key string) (*models.License, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Активировать лицензию
// @Description Закрепляет свободный действующий ключ за текущим тренером.
// @Tags License
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyRedeem true "Лицензионный ключ"
// @Success 200 {object} models.License
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Ключ не найден"
// @Failure 409 {object} response.ErrorResponse "Ключ уже активирован другим тренером"
// @Failure 422 {object} response.ErrorResponse "Ключ истёк или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /license/redeem [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.redeem"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.UserFromContext(r.Context())
	if user == nil {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummyRedeem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	lic, err := h.service.Redeem(r.Context(), user.UUID, req.LicenseKey)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrLicenseNotFound):
		log.Info("license key not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(models.ErrLicenseNotFound.Error()))
		return
	case errors.Is(err, models.ErrLicenseAlreadyAssigned):
		log.Info("license key owned by another trainer")
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(models.ErrLicenseAlreadyAssigned.Error()))
		return
	case errors.Is(err, models.ErrLicenseExpired):
		log.Info("license key expired")
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(models.ErrLicenseExpired.Error()))
		return
	default:
		log.Error("failed to redeem license", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("license redeemed", slog.String("user_uid", user.UUID))
	render.JSON(w, r, response.StatusOKWithData(lic))
}
