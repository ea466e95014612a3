package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trainer-memberships/internal/http/response"
	"github.com/magabrotheeeer/trainer-memberships/internal/license"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// LicenseService определяет интерфейс для проверки лицензии пользователя.
type LicenseService interface {
	Status(ctx context.Context, user *models.User) (license.Decision, *models.License, error)
}

// LicenseGateMiddleware пропускает запрос, только если проверка лицензии
// разрешает доступ. Отказ отдаётся как 403 с контактами поддержки.
func LicenseGateMiddleware(log *slog.Logger, licenses LicenseService, contacts response.Contacts) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.LicenseGateMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user := UserFromContext(r.Context())
			if user == nil {
				log.Info("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			decision, _, err := licenses.Status(r.Context(), user)
			if err != nil {
				log.Error("failed to check license", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !decision.Allowed {
				log.Info("license check denied access",
					slog.String("user_uid", user.UUID),
					slog.String("reason", string(decision.Reason)),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.AccessDenied(string(decision.Reason), contacts))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
