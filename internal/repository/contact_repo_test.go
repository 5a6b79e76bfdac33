package repository

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-manager/internal/model"
	"contact-manager/pkg/apierror"
)

const testContactID = "7b0d9c6e-4f13-4a8e-9b21-6a7f1d2e3c45"

var contactTestColumns = []string{"id", "firstname", "surname", "email", "phone", "address", "deleted", "created_at", "updated_at"}

func contactRows(contacts ...model.Contact) *pgxmock.Rows {
	rows := pgxmock.NewRows(contactTestColumns)
	for _, c := range contacts {
		rows.AddRow(c.ID, c.Firstname, c.Surname, c.Email, c.Phone, c.Address, c.Deleted, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func testContact() model.Contact {
	now := time.Now().UTC()
	return model.Contact{
		ID:        testContactID,
		Firstname: "Ada",
		Surname:   "Lovelace",
		Email:     "ada@example.com",
		Phone:     "01234567890",
		Address:   "12 Analytical Lane",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestContactRepository_Create(t *testing.T) {
	t.Run("unique index violation becomes the documented conflict", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectExec("INSERT INTO contacts").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "contacts_phone_key"})

		repo := NewContactRepository(pool)
		err = repo.Create(context.Background(), testContact())

		require.Error(t, err)
		assert.True(t, apierror.HasStatus(err, http.StatusBadRequest))
		assert.Contains(t, err.Error(), "email or phone number already exists")
	})
}

func TestContactRepository_List(t *testing.T) {
	t.Run("counts and selects live rows only", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE NOT deleted`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
		pool.ExpectQuery("WHERE NOT deleted ORDER BY surname ASC").
			WithArgs(10, 0).
			WillReturnRows(contactRows(testContact()))

		repo := NewContactRepository(pool)
		params := model.ListParams{Page: 1, Limit: 10, Sort: "surname", Order: "asc"}

		contacts, total, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Len(t, contacts, 1)
		assert.Equal(t, 5, total)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("descending order and offset", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE NOT deleted`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(30))
		pool.ExpectQuery("ORDER BY email DESC").
			WithArgs(10, 20).
			WillReturnRows(contactRows())

		repo := NewContactRepository(pool)
		params := model.ListParams{Page: 3, Limit: 10, Sort: "email", Order: "desc"}

		_, total, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 30, total)
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestContactRepository_SoftDelete(t *testing.T) {
	t.Run("flags the row", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectExec("UPDATE contacts SET deleted = TRUE").
			WithArgs(testContactID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewContactRepository(pool)
		require.NoError(t, repo.SoftDelete(context.Background(), testContactID))
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("zero rows affected is not found", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectExec("UPDATE contacts SET deleted = TRUE").
			WithArgs(testContactID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewContactRepository(pool)
		err = repo.SoftDelete(context.Background(), testContactID)

		assert.True(t, apierror.HasStatus(err, http.StatusNotFound))
	})
}

func TestContactRepository_Search(t *testing.T) {
	t.Run("phone match only considers live rows", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectQuery(`WHERE NOT deleted AND \(phone = \$1\)`).
			WithArgs("01234567890").
			WillReturnRows(contactRows(testContact()))

		repo := NewContactRepository(pool)
		found, err := repo.Search(context.Background(), "", "01234567890")

		require.NoError(t, err)
		assert.Equal(t, testContactID, found.ID)
	})

	t.Run("a soft-deleted sole match surfaces as not found", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		// The live-rows predicate filters the match out, so the query
		// returns nothing at all.
		pool.ExpectQuery("WHERE NOT deleted").
			WithArgs("01234567890").
			WillReturnError(pgx.ErrNoRows)

		repo := NewContactRepository(pool)
		_, err = repo.Search(context.Background(), "", "01234567890")

		assert.True(t, apierror.HasStatus(err, http.StatusNotFound))
	})

	t.Run("email fragment is case-insensitive", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectQuery("email ILIKE").
			WithArgs("%Ada@%").
			WillReturnRows(contactRows(testContact()))

		repo := NewContactRepository(pool)
		found, err := repo.Search(context.Background(), "Ada@", "")

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", found.Email)
	})
}

func TestContactRepository_ExistsByEmailOrPhone(t *testing.T) {
	t.Run("no exclusion probes every row", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectQuery("SELECT EXISTS").
			WithArgs("ada@example.com", "01234567890").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		repo := NewContactRepository(pool)
		exists, err := repo.ExistsByEmailOrPhone(context.Background(), "ada@example.com", "01234567890", "")

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("update path excludes the target id", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectQuery(`AND id <> \$3`).
			WithArgs("ada@example.com", "01234567890", testContactID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		repo := NewContactRepository(pool)
		exists, err := repo.ExistsByEmailOrPhone(context.Background(), "ada@example.com", "01234567890", testContactID)

		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestContactRepository_Update(t *testing.T) {
	t.Run("zero rows affected is not found", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectExec("UPDATE contacts").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewContactRepository(pool)
		err = repo.Update(context.Background(), testContact())

		assert.True(t, apierror.HasStatus(err, http.StatusNotFound))
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectExec("UPDATE contacts").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := NewContactRepository(pool)
		err = repo.Update(context.Background(), testContact())

		assert.True(t, apierror.HasStatus(err, http.StatusBadRequest))
	})
}
