package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/sea-catering/internal/migrations"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

func setupTestDb(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err, "failed to create storage")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, s *Storage, email string) string {
	t.Helper()
	uid, err := s.CreateUser(context.Background(), models.User{
		UID:          uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleUser,
	})
	require.NoError(t, err)
	return uid
}

func testSubscription(userUID string) models.Subscription {
	return models.Subscription{
		UserUID:      userUID,
		PlanID:       2,
		Name:         "Budi Santoso",
		Phone:        "081234567890",
		MealTypes:    []string{"breakfast", "lunch", "dinner"},
		DeliveryDays: []string{"monday", "wednesday", "friday"},
		Allergies:    "peanuts",
		TotalPrice:   1548000,
		Status:       models.StatusActive,
		StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("создание и поиск по email", func(t *testing.T) {
		uid := createTestUser(t, storage, "budi@example.com")
		assert.NotEmpty(t, uid)

		user, err := storage.GetUserByEmail(ctx, "budi@example.com")
		require.NoError(t, err)
		assert.Equal(t, uid, user.UID)
		assert.Equal(t, models.RoleUser, user.Role)

		got, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "budi@example.com", got.Email)
	})

	t.Run("несуществующий email", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("повторный email нарушает уникальность", func(t *testing.T) {
		createTestUser(t, storage, "dup@example.com")
		_, err := storage.CreateUser(ctx, models.User{
			UID: uuid.NewString(), Name: "Another", Email: "dup@example.com",
			PasswordHash: "hash", Role: models.RoleUser,
		})
		assert.Error(t, err)
	})
}

func TestStorage_MealPlans(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	plans, err := storage.ListMealPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3, "catalog is seeded by migrations")
	assert.Equal(t, "Diet Plan", plans[0].Name)

	plan, err := storage.GetMealPlan(ctx, plans[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, plan.PricePerMeal)
	assert.NotEmpty(t, plan.Color)

	_, err = storage.GetMealPlan(ctx, 9999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStorage_Subscriptions(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	userUID := createTestUser(t, storage, "subs@example.com")

	t.Run("создание и чтение сохраняют наборы", func(t *testing.T) {
		sub := testSubscription(userUID)
		sub.UID = newTestUID(t, storage)

		uid, err := storage.CreateSubscription(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, sub.UID, uid)

		got, err := storage.GetSubscription(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, []string{"breakfast", "lunch", "dinner"}, got.MealTypes)
		assert.Equal(t, []string{"monday", "wednesday", "friday"}, got.DeliveryDays)
		assert.Equal(t, int64(1548000), got.TotalPrice)
		assert.Equal(t, models.StatusActive, got.Status)
		assert.Nil(t, got.EndDate)
	})

	t.Run("обновление статуса и даты окончания", func(t *testing.T) {
		sub := testSubscription(userUID)
		sub.UID = newTestUID(t, storage)
		_, err := storage.CreateSubscription(ctx, sub)
		require.NoError(t, err)

		endDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		sub.Status = models.StatusPaused
		sub.EndDate = &endDate

		rows, err := storage.UpdateSubscription(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		got, err := storage.GetSubscription(ctx, sub.UID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPaused, got.Status)
		require.NotNil(t, got.EndDate)
		assert.Equal(t, endDate.Format("2006-01-02"), got.EndDate.UTC().Format("2006-01-02"))
	})

	t.Run("обновление несуществующей подписки", func(t *testing.T) {
		sub := testSubscription(userUID)
		sub.UID = "00000000-0000-0000-0000-000000000000"
		rows, err := storage.UpdateSubscription(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("список пользователя и удаление", func(t *testing.T) {
		otherUID := createTestUser(t, storage, "other@example.com")
		sub := testSubscription(otherUID)
		sub.UID = newTestUID(t, storage)
		_, err := storage.CreateSubscription(ctx, sub)
		require.NoError(t, err)

		subs, err := storage.ListSubscriptionsByUser(ctx, otherUID)
		require.NoError(t, err)
		require.Len(t, subs, 1)

		rows, err := storage.RemoveSubscription(ctx, sub.UID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		subs, err = storage.ListSubscriptionsByUser(ctx, otherUID)
		require.NoError(t, err)
		assert.Empty(t, subs)
	})
}

func TestStorage_Metrics(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	userUID := createTestUser(t, storage, "metrics@example.com")

	createAt := func(t *testing.T, status string, totalPrice int64, createdAt time.Time, endDate *time.Time) string {
		t.Helper()
		sub := testSubscription(userUID)
		sub.UID = newTestUID(t, storage)
		sub.Status = status
		sub.TotalPrice = totalPrice
		sub.EndDate = endDate
		_, err := storage.CreateSubscription(ctx, sub)
		require.NoError(t, err)
		_, err = storage.DB.ExecContext(ctx,
			`UPDATE subscriptions SET created_at = $1, updated_at = $1 WHERE uid = $2`,
			createdAt, sub.UID)
		require.NoError(t, err)
		return sub.UID
	}

	now := time.Now().UTC()
	inRange := now.AddDate(0, 0, -5)
	beforeRange := now.AddDate(0, 0, -40)

	createAt(t, models.StatusActive, 1000000, inRange, nil)
	createAt(t, models.StatusActive, 500000, beforeRange, nil)
	createAt(t, models.StatusCancelled, 700000, inRange, &now)

	from := now.AddDate(0, 0, -30)

	t.Run("новые подписки считают только активные в периоде", func(t *testing.T) {
		count, err := storage.CountNewSubscriptions(ctx, from, now)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("MRR суммирует активные на конец периода", func(t *testing.T) {
		mrr, err := storage.SumMRR(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1500000), mrr)
	})

	t.Run("активные на дату", func(t *testing.T) {
		count, err := storage.CountActiveAsOf(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("распределение по планам", func(t *testing.T) {
		distribution, err := storage.CountActiveByPlan(ctx)
		require.NoError(t, err)
		require.Len(t, distribution, 3, "LEFT JOIN keeps plans without subscriptions")
		assert.Equal(t, "Protein Plan", distribution[1].Name)
		assert.Equal(t, 2, distribution[1].Count)
		assert.Equal(t, 0, distribution[0].Count)
	})

	t.Run("счетчики за день", func(t *testing.T) {
		day := time.Date(inRange.Year(), inRange.Month(), inRange.Day(), 0, 0, 0, 0, time.UTC)
		point, err := storage.CountGrowthDay(ctx, day)
		require.NoError(t, err)
		// созданы в этот день активная и отменённая подписки
		assert.Equal(t, 2, point.New)
		assert.Equal(t, 1, point.Cancelled)
	})
}

func TestStorage_Testimonials(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	id, err := storage.CreateTestimonial(ctx, models.Testimonial{
		CustomerName:  "Siti",
		ReviewMessage: "Makanannya enak dan sehat!",
		Rating:        5,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	testimonials, err := storage.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, testimonials, 1)
	assert.Equal(t, 5, testimonials[0].Rating)

	rows, err := storage.RemoveTestimonial(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = storage.RemoveTestimonial(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func newTestUID(t *testing.T, s *Storage) string {
	t.Helper()
	var uid string
	err := s.DB.QueryRow(`SELECT gen_random_uuid()::text`).Scan(&uid)
	require.NoError(t, err)
	return uid
}
