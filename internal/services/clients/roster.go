package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/cache"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/metrics"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Roster — кэш списка клиентов тренера поверх хранилища.
//
// База остаётся источником истины. После успешной записи список в кэше
// правится на месте, после ошибки записи перечитывается из базы один раз.
// Статус в кэш не попадает: его считают при чтении.
type Roster struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewRoster создает кэш списка клиентов.
func NewRoster(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Roster {
	return &Roster{repo: repo, cache: cache, ttl: ttl, log: log}
}

func rosterKey(trainerID string) string {
	return fmt.Sprintf("clients:%s", trainerID)
}

// Load возвращает список клиентов тренера из кэша или из базы.
func (r *Roster) Load(ctx context.Context, trainerID string) ([]models.Client, error) {
	key := rosterKey(trainerID)
	var list []models.Client
	found, err := r.cache.Get(ctx, key, &list)
	if err != nil {
		r.log.Warn("failed to read client list from cache", slog.String("key", key), sl.Err(err))
	}
	if found && err == nil {
		return list, nil
	}

	list, err = r.repo.ListClients(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, list)
	return list, nil
}

// Find ищет клиента в закэшированном списке, не обращаясь к базе.
func (r *Roster) Find(ctx context.Context, trainerID, id string) (*models.Client, bool) {
	var list []models.Client
	found, err := r.cache.Get(ctx, rosterKey(trainerID), &list)
	if err != nil || !found {
		return nil, false
	}
	for i := range list {
		if list[i].ID == id {
			c := list[i]
			return &c, true
		}
	}
	return nil, false
}

// Merge применяет успешную запись к закэшированному списку.
// Если списка в кэше нет, ничего не делает: его загрузит следующее чтение.
// Чтение и запись идут одной оптимистичной транзакцией. Если список
// параллельно поменял другой запрос, кэш сбрасывается целиком.
func (r *Roster) Merge(ctx context.Context, trainerID string, apply func([]models.Client) []models.Client) {
	key := rosterKey(trainerID)
	var list []models.Client
	_, err := r.cache.Update(ctx, key, &list, func() any {
		return withoutStatus(apply(list))
	}, r.ttl)
	switch {
	case errors.Is(err, cache.ErrConflict):
		r.log.Info("client list changed concurrently, dropped from cache", slog.String("key", key))
	case err != nil:
		r.log.Warn("failed to merge client list into cache", slog.String("key", key), sl.Err(err))
		r.invalidate(ctx, key)
	}
}

// Resync перечитывает список клиентов из базы и перезаписывает кэш.
// Если база недоступна, ключ удаляется, чтобы не отдавать устаревший список.
func (r *Roster) Resync(ctx context.Context, trainerID string) {
	metrics.RosterResyncsTotal.Inc()
	key := rosterKey(trainerID)
	list, err := r.repo.ListClients(ctx, trainerID)
	if err != nil {
		r.log.Error("failed to resync client list", slog.String("key", key), sl.Err(err))
		r.invalidate(ctx, key)
		return
	}
	r.store(ctx, key, list)
}

func (r *Roster) store(ctx context.Context, key string, list []models.Client) {
	if err := r.cache.Set(ctx, key, withoutStatus(list), r.ttl); err != nil {
		r.log.Warn("failed to cache client list", slog.String("key", key), sl.Err(err))
	}
}

func withoutStatus(list []models.Client) []models.Client {
	clean := make([]models.Client, len(list))
	for i, c := range list {
		c.Status = ""
		clean[i] = c
	}
	return clean
}

func (r *Roster) invalidate(ctx context.Context, key string) {
	if err := r.cache.Invalidate(ctx, key); err != nil {
		r.log.Warn("failed to invalidate client list", slog.String("key", key), sl.Err(err))
	}
}
