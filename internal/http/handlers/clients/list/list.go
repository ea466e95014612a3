// Package list реализует HTTP-обработчик списка клиентов тренера.
//
// Необязательный параметр status (active, expiring, expired) фильтрует
// клиентов по статусу абонемента на сегодня.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trainer-memberships/internal/http/handlers/clients"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trainer-memberships/internal/http/response"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Handler обрабатывает запросы на список клиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка клиентов.
type Service interface {
	List(ctx context.Context, trainerID string, status models.MembershipStatus) ([]models.Client, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает клиентов тренера, новые первыми.
// @Tags Clients
// @Produce  json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу" Enums(active, expiring, expired)
// @Success 200 {array} clients.ClientResponse
// @Failure 422 {object} response.ErrorResponse "Неизвестный статус"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.clients.list"
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

	status := models.MembershipStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.StatusActive, models.StatusExpiring, models.StatusExpired:
	default:
		log.Info("unknown status filter", slog.String("status", string(status)))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("status must be one of [active expiring expired]"))
		return
	}

	list, err := h.service.List(r.Context(), user.UUID, status)
	if err != nil {
		clients.RenderError(w, r, log, err)
		return
	}

	out := make([]clients.ClientResponse, 0, len(list))
	for i := range list {
		out = append(out, clients.ToResponse(&list[i]))
	}
	render.JSON(w, r, response.StatusOKWithData(out))
}
