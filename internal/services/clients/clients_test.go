package clients

import (
	"context"
	"errors"
	"io"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trainer-memberships/internal/cache"
	"github.com/magabrotheeeer/trainer-memberships/internal/config"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/localdate"
	"github.com/magabrotheeeer/trainer-memberships/internal/membership"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	args := m.Called(ctx, c)
	if fn, ok := args.Get(0).(func(context.Context, models.Client) *models.Client); ok {
		return fn(ctx, c), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *RepoMock) GetClient(ctx context.Context, trainerID, id string) (*models.Client, error) {
	args := m.Called(ctx, trainerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *RepoMock) ListClients(ctx context.Context, trainerID string) ([]models.Client, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *RepoMock) FindClientsByIdentity(ctx context.Context, trainerID string, docType models.DocumentType, cedula string) ([]models.Client, error) {
	args := m.Called(ctx, trainerID, docType, cedula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *RepoMock) UpdateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	args := m.Called(ctx, c)
	if fn, ok := args.Get(0).(func(context.Context, models.Client) *models.Client); ok {
		return fn(ctx, c), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *RepoMock) UpdateMembershipWindow(ctx context.Context, trainerID, id string, start, end time.Time, months int) (*models.Client, error) {
	args := m.Called(ctx, trainerID, id, start, end, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *RepoMock) RemoveClient(ctx context.Context, trainerID, id string) error {
	args := m.Called(ctx, trainerID, id)
	return args.Error(0)
}

const trainerA = "trainer-a"

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := localdate.Parse(s)
	require.NoError(t, err)
	return d
}

func setupService(t *testing.T, today string) (*Service, *RepoMock, *cache.Cache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	repo := new(RepoMock)
	clock := membership.FixedClock{At: date(t, today).Add(12 * time.Hour)}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(repo, c, clock, log, time.Hour)
	svc.newID = func() string { return "new-id" }
	return svc, repo, c
}

func cachedRoster(t *testing.T, c *cache.Cache, trainerID string) ([]models.Client, bool) {
	t.Helper()
	var list []models.Client
	found, err := c.Get(context.Background(), rosterKey(trainerID), &list)
	require.NoError(t, err)
	return list, found
}

func validRequest() models.DummyClient {
	return models.DummyClient{
		FullName:       "Ana Pérez",
		Phone:          "+58 412 0000000",
		DocumentType:   "V",
		Cedula:         "12345678",
		StartDate:      "2025-06-01",
		DurationMonths: 1,
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        func() models.DummyClient
		setupMocks func(r *RepoMock)
		wantEnd    string
		wantStatus models.MembershipStatus
		wantErr    error
	}{
		{
			name: "successful enrollment",
			req:  validRequest,
			setupMocks: func(r *RepoMock) {
				r.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
					Return([]models.Client{}, nil).Once()
				r.On("CreateClient", mock.Anything, mock.MatchedBy(func(c models.Client) bool {
					return c.ID == "new-id" && c.TrainerID == trainerA &&
						localdate.Format(c.EndDate) == "2025-07-01"
				})).Return(func(_ context.Context, c models.Client) *models.Client { return &c }, nil).Once()
			},
			wantEnd:    "2025-07-01",
			wantStatus: models.StatusActive,
		},
		{
			name: "end of month overflow",
			req: func() models.DummyClient {
				req := validRequest()
				req.StartDate = "2025-01-31"
				return req
			},
			setupMocks: func(r *RepoMock) {
				r.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
					Return([]models.Client{}, nil).Once()
				r.On("CreateClient", mock.Anything, mock.Anything).
					Return(func(_ context.Context, c models.Client) *models.Client { return &c }, nil).Once()
			},
			wantEnd:    "2025-03-03",
			wantStatus: models.StatusExpired,
		},
		{
			name: "duplicate document for the same trainer",
			req:  validRequest,
			setupMocks: func(r *RepoMock) {
				r.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
					Return([]models.Client{{ID: "existing"}}, nil).Once()
			},
			wantErr: models.ErrDuplicateIdentity,
		},
		{
			name: "invalid start date",
			req: func() models.DummyClient {
				req := validRequest()
				req.StartDate = "01/06/2025"
				return req
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    models.ErrInvalidDate,
		},
		{
			name: "unknown document type",
			req: func() models.DummyClient {
				req := validRequest()
				req.DocumentType = "P"
				return req
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    models.ErrInvalidDocumentType,
		},
		{
			name: "zero duration",
			req: func() models.DummyClient {
				req := validRequest()
				req.DurationMonths = 0
				return req
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    models.ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := setupService(t, "2025-06-10")
			tt.setupMocks(repo)

			got, err := svc.Create(context.Background(), trainerA, tt.req())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantEnd, localdate.Format(got.EndDate))
				assert.Equal(t, tt.wantStatus, got.Status)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Create_DuplicateCarriesExistingClient(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-10")
	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
		Return([]models.Client{{ID: "existing"}}, nil).Once()

	_, err := svc.Create(context.Background(), trainerA, validRequest())

	var dup *models.DuplicateIdentityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "existing", dup.ExistingID)
	assert.Equal(t, "12345678", dup.Cedula)
}

func TestService_Create_SameDocumentOtherTrainer(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-10")
	// У другого тренера такой же документ есть, но поиск идёт только по trainer-b.
	repo.On("FindClientsByIdentity", mock.Anything, "trainer-b", models.DocumentNational, "12345678").
		Return([]models.Client{}, nil).Once()
	repo.On("CreateClient", mock.Anything, mock.Anything).
		Return(func(_ context.Context, c models.Client) *models.Client { return &c }, nil).Once()

	got, err := svc.Create(context.Background(), "trainer-b", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "trainer-b", got.TrainerID)
	repo.AssertExpectations(t)
}

func TestService_Create_StoreErrorResyncsRoster(t *testing.T) {
	svc, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	stale := []models.Client{{ID: "ghost", TrainerID: trainerA, FullName: "Ghost"}}
	require.NoError(t, c.Set(ctx, rosterKey(trainerA), stale, time.Hour))

	fresh := []models.Client{{ID: "real", TrainerID: trainerA, FullName: "Real", EndDate: date(t, "2025-09-01")}}
	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
		Return([]models.Client{}, nil).Once()
	repo.On("CreateClient", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()
	repo.On("ListClients", mock.Anything, trainerA).Return(fresh, nil).Once()

	_, err := svc.Create(ctx, trainerA, validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	list, found := cachedRoster(t, c, trainerA)
	require.True(t, found)
	require.Len(t, list, 1)
	assert.Equal(t, "real", list[0].ID)
	repo.AssertExpectations(t)
}

func TestService_Create_ConstraintViolationDoesNotResync(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-10")

	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
		Return([]models.Client{}, nil).Once()
	repo.On("CreateClient", mock.Anything, mock.Anything).
		Return(nil, &models.DuplicateIdentityError{DocumentType: models.DocumentNational, Cedula: "12345678"}).Once()

	_, err := svc.Create(context.Background(), trainerA, validRequest())
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
	repo.AssertNotCalled(t, "ListClients", mock.Anything, mock.Anything)
}

func TestService_Create_MergesIntoCachedRoster(t *testing.T) {
	svc, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, rosterKey(trainerA), []models.Client{{ID: "old", TrainerID: trainerA}}, time.Hour))
	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
		Return([]models.Client{}, nil).Once()
	repo.On("CreateClient", mock.Anything, mock.Anything).
		Return(func(_ context.Context, c models.Client) *models.Client { return &c }, nil).Once()

	_, err := svc.Create(ctx, trainerA, validRequest())
	require.NoError(t, err)

	list, found := cachedRoster(t, c, trainerA)
	require.True(t, found)
	require.Len(t, list, 2)
	assert.Equal(t, "new-id", list[0].ID)
	assert.Empty(t, list[0].Status)
}

// interleavingCache выполняет during между чтением и записью
// первого Update, как если бы параллельный запрос успел раньше.
type interleavingCache struct {
	*cache.Cache
	fired  bool
	during func()
}

func (c *interleavingCache) Update(ctx context.Context, key string, result any, modify func() any, ttl time.Duration) (bool, error) {
	return c.Cache.Update(ctx, key, result, func() any {
		if !c.fired {
			c.fired = true
			c.during()
		}
		return modify()
	}, ttl)
}

func TestService_Create_InterleavedCreatesKeepBothClients(t *testing.T) {
	_, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	seed := models.Client{ID: "old", TrainerID: trainerA, EndDate: date(t, "2025-09-01")}
	require.NoError(t, c.Set(ctx, rosterKey(trainerA), []models.Client{seed}, time.Hour))

	wrapped := &interleavingCache{Cache: c}
	svc := NewService(repo, wrapped, membership.FixedClock{At: date(t, "2025-06-10")},
		slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	next := 0
	svc.newID = func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}

	second := validRequest()
	second.Cedula = "87654321"
	wrapped.during = func() {
		_, err := svc.Create(ctx, trainerA, second)
		require.NoError(t, err)
	}

	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, mock.Anything).
		Return([]models.Client{}, nil).Twice()
	repo.On("CreateClient", mock.Anything, mock.Anything).
		Return(func(_ context.Context, c models.Client) *models.Client { return &c }, nil).Twice()

	_, err := svc.Create(ctx, trainerA, validRequest())
	require.NoError(t, err)

	// Запись первого запроса опоздала: устаревший список не сохранён.
	_, found := cachedRoster(t, c, trainerA)
	require.False(t, found)

	repo.On("ListClients", mock.Anything, trainerA).Return([]models.Client{
		{ID: "id-2", TrainerID: trainerA, EndDate: date(t, "2025-07-01")},
		{ID: "id-1", TrainerID: trainerA, EndDate: date(t, "2025-07-01")},
		seed,
	}, nil).Once()

	got, err := svc.List(ctx, trainerA, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.ElementsMatch(t, []string{"id-1", "id-2", "old"}, ids)
	repo.AssertExpectations(t)
}

func TestService_Update_IgnoresOwnDocument(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-10")

	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
		Return([]models.Client{{ID: "client-1"}}, nil).Once()
	repo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c models.Client) bool {
		return c.ID == "client-1" && c.TrainerID == trainerA
	})).Return(func(_ context.Context, c models.Client) *models.Client { return &c }, nil).Once()

	got, err := svc.Update(context.Background(), trainerA, "client-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "client-1", got.ID)
	repo.AssertExpectations(t)
}

func TestService_Update_RejectsOtherClientsDocument(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-10")

	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
		Return([]models.Client{{ID: "client-1"}, {ID: "client-2"}}, nil).Once()

	_, err := svc.Update(context.Background(), trainerA, "client-1", validRequest())
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
	repo.AssertNotCalled(t, "UpdateClient", mock.Anything, mock.Anything)
}

func TestService_Renew(t *testing.T) {
	tests := []struct {
		name      string
		req       models.DummyRenewal
		wantStart string
		wantEnd   string
	}{
		{
			name:      "starts today and ignores old end date",
			req:       models.DummyRenewal{DurationMonths: 1},
			wantStart: "2025-06-15",
			wantEnd:   "2025-07-15",
		},
		{
			name:      "explicit start date",
			req:       models.DummyRenewal{DurationMonths: 3, StartDate: "2025-07-01"},
			wantStart: "2025-07-01",
			wantEnd:   "2025-10-01",
		},
		{
			name:      "same overflow rule as enrollment",
			req:       models.DummyRenewal{DurationMonths: 1, StartDate: "2025-01-31"},
			wantStart: "2025-01-31",
			wantEnd:   "2025-03-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := setupService(t, "2025-06-15")
			current := &models.Client{
				ID:             "client-1",
				TrainerID:      trainerA,
				StartDate:      date(t, "2023-12-01"),
				DurationMonths: 1,
				EndDate:        date(t, "2024-01-01"),
			}
			start, end := date(t, tt.wantStart), date(t, tt.wantEnd)

			repo.On("GetClient", mock.Anything, trainerA, "client-1").Return(current, nil).Once()
			repo.On("UpdateMembershipWindow", mock.Anything, trainerA, "client-1", start, end, tt.req.DurationMonths).
				Return(&models.Client{
					ID:             "client-1",
					TrainerID:      trainerA,
					StartDate:      start,
					DurationMonths: tt.req.DurationMonths,
					EndDate:        end,
				}, nil).Once()

			got, err := svc.Renew(context.Background(), trainerA, "client-1", tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnd, localdate.Format(got.EndDate))
			assert.Equal(t, membership.Classify(end, date(t, "2025-06-15")), got.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Renew_RejectsBadInput(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-15")

	_, err := svc.Renew(context.Background(), trainerA, "client-1", models.DummyRenewal{DurationMonths: 0})
	assert.ErrorIs(t, err, models.ErrInvalidDuration)

	_, err = svc.Renew(context.Background(), trainerA, "client-1", models.DummyRenewal{DurationMonths: 1, StartDate: "2025-13-01"})
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	repo.AssertNotCalled(t, "GetClient", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Renew_NotFoundSkipsResync(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-15")

	repo.On("GetClient", mock.Anything, trainerA, "missing").Return(nil, models.ErrClientNotFound).Once()

	_, err := svc.Renew(context.Background(), trainerA, "missing", models.DummyRenewal{DurationMonths: 1})
	assert.ErrorIs(t, err, models.ErrClientNotFound)
	repo.AssertNotCalled(t, "ListClients", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateMembershipWindow",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_NotFoundSkipsResync(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-10")

	repo.On("FindClientsByIdentity", mock.Anything, trainerA, models.DocumentNational, "12345678").
		Return([]models.Client{}, nil).Once()
	repo.On("UpdateClient", mock.Anything, mock.Anything).Return(nil, models.ErrClientNotFound).Once()

	_, err := svc.Update(context.Background(), trainerA, "missing", validRequest())
	assert.ErrorIs(t, err, models.ErrClientNotFound)
	repo.AssertNotCalled(t, "ListClients", mock.Anything, mock.Anything)
}

func TestService_Remove(t *testing.T) {
	svc, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, rosterKey(trainerA), []models.Client{{ID: "client-1"}, {ID: "client-2"}}, time.Hour))
	repo.On("RemoveClient", mock.Anything, trainerA, "client-1").Return(nil).Once()

	require.NoError(t, svc.Remove(ctx, trainerA, "client-1"))

	list, found := cachedRoster(t, c, trainerA)
	require.True(t, found)
	require.Len(t, list, 1)
	assert.Equal(t, "client-2", list[0].ID)
}

func TestService_Remove_NotFoundKeepsRoster(t *testing.T) {
	svc, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, rosterKey(trainerA), []models.Client{{ID: "client-1"}}, time.Hour))
	repo.On("RemoveClient", mock.Anything, trainerA, "missing").Return(models.ErrClientNotFound).Once()

	err := svc.Remove(ctx, trainerA, "missing")
	assert.ErrorIs(t, err, models.ErrClientNotFound)

	_, found := cachedRoster(t, c, trainerA)
	assert.True(t, found)
	repo.AssertNotCalled(t, "ListClients", mock.Anything, mock.Anything)
}

func TestService_Remove_StoreErrorResyncs(t *testing.T) {
	svc, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, rosterKey(trainerA), []models.Client{{ID: "client-1"}}, time.Hour))
	repo.On("RemoveClient", mock.Anything, trainerA, "client-1").Return(errors.New("connection reset")).Once()
	repo.On("ListClients", mock.Anything, trainerA).Return(nil, errors.New("db down")).Once()

	err := svc.Remove(ctx, trainerA, "client-1")
	require.Error(t, err)

	// Перечитать не удалось: список удалён из кэша.
	_, found := cachedRoster(t, c, trainerA)
	assert.False(t, found)
	repo.AssertExpectations(t)
}

func TestService_List_RecomputesStatusFromCache(t *testing.T) {
	svc, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	// В кэше лежит устаревший статус: он должен быть пересчитан.
	cached := []models.Client{
		{ID: "expired", EndDate: date(t, "2025-06-09"), Status: models.StatusActive},
		{ID: "expiring", EndDate: date(t, "2025-06-13"), Status: models.StatusActive},
		{ID: "active", EndDate: date(t, "2025-06-14"), Status: models.StatusExpired},
	}
	require.NoError(t, c.Set(ctx, rosterKey(trainerA), cached, time.Hour))

	all, err := svc.List(ctx, trainerA, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.StatusExpired, all[0].Status)
	assert.Equal(t, models.StatusExpiring, all[1].Status)
	assert.Equal(t, models.StatusActive, all[2].Status)

	expiring, err := svc.List(ctx, trainerA, models.StatusExpiring)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "expiring", expiring[0].ID)

	repo.AssertNotCalled(t, "ListClients", mock.Anything, mock.Anything)
}

func TestService_List_LoadsFromStoreOnMiss(t *testing.T) {
	svc, repo, c := setupService(t, "2025-06-10")
	ctx := context.Background()

	repo.On("ListClients", mock.Anything, trainerA).
		Return([]models.Client{{ID: "client-1", EndDate: date(t, "2025-08-01")}}, nil).Once()

	got, err := svc.List(ctx, trainerA, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.StatusActive, got[0].Status)

	list, found := cachedRoster(t, c, trainerA)
	require.True(t, found)
	assert.Empty(t, list[0].Status)

	// Второй вызов обслуживается из кэша.
	_, err = svc.List(ctx, trainerA, "")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ListClients", 1)
}

func TestService_Read(t *testing.T) {
	svc, repo, _ := setupService(t, "2025-06-10")

	repo.On("GetClient", mock.Anything, trainerA, "client-1").
		Return(&models.Client{ID: "client-1", EndDate: date(t, "2025-06-10")}, nil).Once()
	repo.On("GetClient", mock.Anything, trainerA, "missing").
		Return(nil, models.ErrClientNotFound).Once()

	got, err := svc.Read(context.Background(), trainerA, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpiring, got.Status)

	_, err = svc.Read(context.Background(), trainerA, "missing")
	assert.ErrorIs(t, err, models.ErrClientNotFound)
}
