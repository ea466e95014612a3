// Package status реализует HTTP-обработчик состояния лицензии тренера.
//
// Ответ содержит решение проверки лицензии и саму лицензию, если она есть,
// чтобы клиентское приложение могло показать экран продления.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trainer-memberships/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/response"
	"github.com/magabrotheeeer/trainer-memberships/internal/license"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Handler обрабатывает запросы состояния лицензии.
type Handler struct {
	log      *slog.Logger
	service  Service
	contacts response.Contacts
}

// Service описывает проверку лицензии пользователя.
type Service interface {
	Status(ctx context.Context, user *models.User) (license.Decision, *models.License, error)
}

// Result — тело успешного ответа.
type Result struct {
	Decision license.Decision  `json:"decision"`
	License  *models.License   `json:"license,omitempty"`
	Contacts response.Contacts `json:"contacts"`
}

// New создает новый Handler. contacts отдаются в ответе для связи с поддержкой.
func New(log *slog.Logger, service Service, contacts response.Contacts) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		contacts: contacts,
	}
}

// ServeHTTP godoc
// @Summary Состояние лицензии
// @Description Возвращает решение проверки лицензии текущего пользователя.
// @Tags License
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Result
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /license [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.status"
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

	decision, lic, err := h.service.Status(r.Context(), user)
	if err != nil {
		log.Error("failed to check license", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(Result{
		Decision: decision,
		License:  lic,
		Contacts: h.contacts,
	}))
}
