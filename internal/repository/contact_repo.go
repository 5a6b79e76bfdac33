package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"contact-manager/internal/model"
	"contact-manager/pkg/apierror"
)

const contactColumns = `id, firstname, surname, email, phone, address, deleted, created_at, updated_at`

type ContactRepository struct {
	db DB
}

func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c model.Contact) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO contacts (id, firstname, surname, email, phone, address, deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Firstname, c.Surname, c.Email, c.Phone, c.Address, c.Deleted, c.CreatedAt, c.UpdatedAt)
	if isUniqueViolation(err) {
		return apierror.Conflict("email or phone number already exists")
	}
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// FindByID returns the record whether or not it is soft-deleted; the
// service layer decides how a deleted contact surfaces to clients.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (model.Contact, error) {
	var c model.Contact
	err := r.db.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id).
		Scan(&c.ID, &c.Firstname, &c.Surname, &c.Email, &c.Phone, &c.Address,
			&c.Deleted, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Contact{}, apierror.NotFound("contact not found")
	}
	if err != nil {
		return model.Contact{}, fmt.Errorf("find contact by id: %w", err)
	}
	return c, nil
}

// ExistsByEmailOrPhone probes for a duplicate email or phone. Soft-deleted
// rows count as duplicates; excludeID carves out the record being updated.
func (r *ContactRepository) ExistsByEmailOrPhone(ctx context.Context, email string, phone string, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM contacts WHERE (lower(email) = lower($1) OR phone = $2))`
	args := []any{strings.TrimSpace(email), strings.TrimSpace(phone)}

	if excludeID != "" {
		query = `SELECT EXISTS(SELECT 1 FROM contacts WHERE (lower(email) = lower($1) OR phone = $2) AND id <> $3)`
		args = append(args, excludeID)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check contact exists: %w", err)
	}
	return exists, nil
}

// List returns one page of live contacts plus the live total for paging math.
func (r *ContactRepository) List(ctx context.Context, params model.ListParams) ([]model.Contact, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE NOT deleted`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	direction := "ASC"
	if params.Order == "desc" {
		direction = "DESC"
	}

	// SortColumn only ever returns a whitelisted identifier.
	query := fmt.Sprintf(
		`SELECT %s FROM contacts WHERE NOT deleted ORDER BY %s %s LIMIT $1 OFFSET $2`,
		contactColumns, params.SortColumn(), direction)

	rows, err := r.db.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]model.Contact, 0, params.Limit)
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Firstname, &c.Surname, &c.Email, &c.Phone, &c.Address,
			&c.Deleted, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *ContactRepository) Update(ctx context.Context, c model.Contact) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE contacts
		 SET firstname = $2, surname = $3, email = $4, phone = $5, address = $6, updated_at = $7
		 WHERE id = $1`,
		c.ID, c.Firstname, c.Surname, c.Email, c.Phone, c.Address, c.UpdatedAt)
	if isUniqueViolation(err) {
		return apierror.Conflict("email or phone number already exists")
	}
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("contact not found")
	}
	return nil
}

// SoftDelete flags the record as deleted; the row itself is never removed.
func (r *ContactRepository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE contacts SET deleted = TRUE, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("contact not found")
	}
	return nil
}

// Search matches live contacts only: a soft-deleted record that would
// otherwise match yields not-found.
func (r *ContactRepository) Search(ctx context.Context, email string, phone string) (model.Contact, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if email != "" {
		args = append(args, "%"+email+"%")
		where = append(where, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if phone != "" {
		args = append(args, phone)
		where = append(where, fmt.Sprintf("phone = $%d", len(args)))
	}
	if len(where) == 0 {
		return model.Contact{}, apierror.BadRequest("at least one of email or phone must be provided")
	}

	query := `SELECT ` + contactColumns + ` FROM contacts
	          WHERE NOT deleted AND (` + strings.Join(where, " OR ") + `) LIMIT 1`

	var c model.Contact
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Firstname, &c.Surname, &c.Email, &c.Phone, &c.Address,
			&c.Deleted, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Contact{}, apierror.NotFound("contact not found")
	}
	if err != nil {
		return model.Contact{}, fmt.Errorf("search contacts: %w", err)
	}
	return c, nil
}
