// Package clients содержит общие для обработчиков клиентов части:
// формат ответа с датами YYYY-MM-DD и перевод ошибок сервиса в HTTP-статусы.
package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trainer-memberships/internal/http/response"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/localdate"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// ClientResponse — клиент в ответе API.
type ClientResponse struct {
	ID             string                  `json:"id"`
	FullName       string                  `json:"full_name"`
	Phone          string                  `json:"phone,omitempty"`
	Email          string                  `json:"email,omitempty"`
	DocumentType   models.DocumentType     `json:"document_type"`
	Cedula         string                  `json:"cedula"`
	StartDate      string                  `json:"start_date" example:"2025-06-15"`
	DurationMonths int                     `json:"duration_months"`
	EndDate        string                  `json:"end_date" example:"2025-07-15"`
	Status         models.MembershipStatus `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ToResponse переводит клиента в формат ответа.
func ToResponse(c *models.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		FullName:       c.FullName,
		Phone:          c.Phone,
		Email:          c.Email,
		DocumentType:   c.DocumentType,
		Cedula:         c.Cedula,
		StartDate:      localdate.Format(c.StartDate),
		DurationMonths: c.DurationMonths,
		EndDate:        localdate.Format(c.EndDate),
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
	}
}

// RenderError пишет ответ для ошибки сервиса клиентов.
// Ошибки проверки данных и конфликты не логируются как сбои.
func RenderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var dup *models.DuplicateIdentityError
	switch {
	case errors.As(err, &dup):
		log.Info("duplicate client document", slog.String("existing_id", dup.ExistingID))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Response{
			Status: response.StatusError,
			Error:  dup.Error(),
			Data:   map[string]any{"existing_id": dup.ExistingID},
		})
	case errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, models.ErrInvalidDuration),
		errors.Is(err, models.ErrInvalidDocumentType):
		log.Info("invalid client data", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(rootMessage(err)))
	case errors.Is(err, models.ErrClientNotFound):
		log.Info("client not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(models.ErrClientNotFound.Error()))
	default:
		log.Error("client operation failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
	}
}

func rootMessage(err error) string {
	for _, known := range []error{models.ErrInvalidDate, models.ErrInvalidDuration, models.ErrInvalidDocumentType} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
