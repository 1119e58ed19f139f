package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio-server/internal/models"
	"portfolio-server/internal/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	return db, dbMock
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAppointmentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("count active appointments on a slot", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewAppointmentRepository(db)

		dbMock.ExpectQuery("SELECT count\\(\\*\\) FROM `appointments` WHERE .*date = \\? AND time_slot = \\? AND status IN \\(\\?,\\?\\)").
			WithArgs("2025-06-10", "10:00", "PENDING", "CONFIRMED").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := repo.CountActive(ctx, mustDate(t, "2025-06-10"), "10:00", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("count active excludes an appointment", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewAppointmentRepository(db)

		dbMock.ExpectQuery("SELECT count\\(\\*\\) FROM `appointments` WHERE .*id <> \\?").
			WithArgs("2025-06-10", "10:00", "PENDING", "CONFIRMED", "appt-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.CountActive(ctx, mustDate(t, "2025-06-10"), "10:00", "appt-1")
		require.NoError(t, err)
		assert.Zero(t, count)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("duplicate active slot maps to ErrDuplicate", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewAppointmentRepository(db)

		dbMock.ExpectBegin()
		dbMock.ExpectExec("INSERT INTO `appointments`").
			WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '2025-06-10 10:00' for key 'active_slot'"})
		dbMock.ExpectRollback()

		appointment := &models.Appointment{
			Date:     mustDate(t, "2025-06-10"),
			TimeSlot: "10:00",
			Name:     "Ada",
			Email:    "ada@example.com",
			Status:   models.StatusPending,
		}
		err := repo.Create(ctx, appointment)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		require.NotNil(t, appointment.ActiveSlot)
		assert.Equal(t, "2025-06-10 10:00", *appointment.ActiveSlot)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("get unknown appointment", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewAppointmentRepository(db)

		dbMock.ExpectQuery("SELECT \\* FROM `appointments` WHERE id = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("booked slots of a day", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewAppointmentRepository(db)

		dbMock.ExpectQuery("SELECT `time_slot` FROM `appointments`").
			WithArgs("2025-06-10", "PENDING", "CONFIRMED").
			WillReturnRows(sqlmock.NewRows([]string{"time_slot"}).AddRow("09:00").AddRow("14:00"))

		slots, err := repo.BookedSlots(ctx, mustDate(t, "2025-06-10"))
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "14:00"}, slots)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("booked dates grouped by day", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewAppointmentRepository(db)

		dbMock.ExpectQuery("SELECT `date`,`time_slot` FROM `appointments`").
			WithArgs("2025-06-01", "2025-06-30", "PENDING", "CONFIRMED").
			WillReturnRows(sqlmock.NewRows([]string{"date", "time_slot"}).
				AddRow(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "09:00").
				AddRow(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "10:00").
				AddRow(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), "16:00"))

		booked, err := repo.BookedDates(ctx, mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"))
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{
			"2025-06-10": {"09:00", "10:00"},
			"2025-06-12": {"16:00"},
		}, booked)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestTechnologyRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("usage counts every join table", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewTechnologyRepository(db)

		dbMock.ExpectQuery("SELECT count\\(\\*\\) FROM `project_technologies` WHERE technology_id = \\?").
			WithArgs("tech-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		dbMock.ExpectQuery("SELECT count\\(\\*\\) FROM `experience_technologies` WHERE technology_id = \\?").
			WithArgs("tech-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		dbMock.ExpectQuery("SELECT count\\(\\*\\) FROM `engagement_technologies` WHERE technology_id = \\?").
			WithArgs("tech-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		usage, err := repo.Usage(ctx, "tech-1")
		require.NoError(t, err)
		assert.Equal(t, models.TechnologyUsage{Projects: 2, Experiences: 0, Engagements: 1}, usage)
		assert.Equal(t, int64(3), usage.Total())
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("no slugs means no query", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewTechnologyRepository(db)

		techs, err := repo.FindBySlugs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, techs)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("delete unknown technology", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewTechnologyRepository(db)

		dbMock.ExpectBegin()
		dbMock.ExpectExec("DELETE FROM `technologies` WHERE id = \\?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbMock.ExpectCommit()

		err := repo.Delete(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestContentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes join rows", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewContentRepository[models.Project](db)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT \\* FROM `projects` WHERE id = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug"}).AddRow("p-1", "Site", "site"))
		dbMock.ExpectExec("DELETE FROM `project_technologies` WHERE `project_technologies`.`project_id` = \\?").
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		dbMock.ExpectExec("DELETE FROM `projects` WHERE `projects`.`id` = \\?").
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, "p-1"))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("delete unknown id", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewContentRepository[models.Project](db)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT \\* FROM `projects` WHERE id = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		dbMock.ExpectRollback()

		err := repo.Delete(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("update without technologies keeps join rows", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewContentRepository[models.Project](db)
		project := &models.Project{BaseModel: models.BaseModel{ID: "p-1"}, Title: "Site", Slug: "site"}

		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE `projects` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, repo.Update(ctx, project, nil))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("update with an empty set clears join rows", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		repo := repository.NewContentRepository[models.Project](db)
		project := &models.Project{
			BaseModel:    models.BaseModel{ID: "p-1"},
			Title:        "Site",
			Slug:         "site",
			Technologies: []models.Technology{{BaseModel: models.BaseModel{ID: "tech-go"}, Name: "Go", Slug: "go"}},
		}

		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE `projects` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectExec("DELETE FROM `project_technologies` WHERE `project_technologies`.`project_id` = \\?").
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, repo.Update(ctx, project, &[]models.Technology{}))
		assert.Empty(t, project.Technologies)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
