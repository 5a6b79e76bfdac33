package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"contact-manager/internal/model"
	"contact-manager/pkg/apierror"
)

type contactStore interface {
	Create(ctx context.Context, c model.Contact) error
	FindByID(ctx context.Context, id string) (model.Contact, error)
	ExistsByEmailOrPhone(ctx context.Context, email string, phone string, excludeID string) (bool, error)
	List(ctx context.Context, params model.ListParams) ([]model.Contact, int, error)
	Update(ctx context.Context, c model.Contact) error
	SoftDelete(ctx context.Context, id string) error
	Search(ctx context.Context, email string, phone string) (model.Contact, error)
}

type auditRecorder interface {
	Record(ctx context.Context, action string, contactID string, actor model.AuthClaims)
}

type ContactService struct {
	contacts contactStore
	audit    auditRecorder
}

func NewContactService(contacts contactStore, audit auditRecorder) *ContactService {
	return &ContactService{contacts: contacts, audit: audit}
}

// Create rejects duplicates of any existing row's email or phone, including
// soft-deleted rows. That matches the unique indexes underneath; whether a
// dead contact's identifiers should become reusable is a pending product
// decision, not something resolved here.
func (s *ContactService) Create(ctx context.Context, req model.ContactRequest, actor model.AuthClaims) (model.Contact, error) {
	exists, err := s.contacts.ExistsByEmailOrPhone(ctx, req.Email, req.Phone, "")
	if err != nil {
		return model.Contact{}, err
	}
	if exists {
		return model.Contact{}, apierror.Conflict("email or phone number already exists")
	}

	now := time.Now().UTC()
	contact := model.Contact{
		ID:        uuid.NewString(),
		Firstname: strings.TrimSpace(req.Firstname),
		Surname:   strings.TrimSpace(req.Surname),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Deleted:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return model.Contact{}, err
	}

	s.audit.Record(ctx, model.AuditActionCreate, contact.ID, actor)
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, params model.ListParams) (model.ContactPage, error) {
	params.Normalize()

	contacts, total, err := s.contacts.List(ctx, params)
	if err != nil {
		return model.ContactPage{}, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return model.ContactPage{
		Contacts:    contacts,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
	}, nil
}

// Get surfaces soft-deleted records as a 400 rather than hiding them the
// way listing does; direct-by-id lookup is explicit about the deletion.
func (s *ContactService) Get(ctx context.Context, id string) (model.Contact, error) {
	if err := requireUUID(id); err != nil {
		return model.Contact{}, err
	}

	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}

	if contact.Deleted {
		return model.Contact{}, apierror.BadRequest("this contact has been deleted")
	}

	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id string, req model.ContactRequest, actor model.AuthClaims) (model.Contact, error) {
	if err := requireUUID(id); err != nil {
		return model.Contact{}, err
	}

	exists, err := s.contacts.ExistsByEmailOrPhone(ctx, req.Email, req.Phone, id)
	if err != nil {
		return model.Contact{}, err
	}
	if exists {
		return model.Contact{}, apierror.Conflict("email or phone number already exists")
	}

	current, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}

	current.Firstname = strings.TrimSpace(req.Firstname)
	current.Surname = strings.TrimSpace(req.Surname)
	current.Email = strings.TrimSpace(req.Email)
	current.Phone = strings.TrimSpace(req.Phone)
	current.Address = strings.TrimSpace(req.Address)
	current.UpdatedAt = time.Now().UTC()

	if err := s.contacts.Update(ctx, current); err != nil {
		return model.Contact{}, err
	}

	s.audit.Record(ctx, model.AuditActionUpdate, current.ID, actor)
	return current, nil
}

func (s *ContactService) Delete(ctx context.Context, id string, actor model.AuthClaims) error {
	if err := requireUUID(id); err != nil {
		return err
	}

	if err := s.contacts.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, model.AuditActionDelete, id, actor)
	return nil
}

func (s *ContactService) Search(ctx context.Context, email string, phone string) (model.Contact, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if email == "" && phone == "" {
		return model.Contact{}, apierror.BadRequest("at least one of email or phone must be provided")
	}

	return s.contacts.Search(ctx, email, phone)
}

// requireUUID keeps malformed ids out of the store, where they would
// otherwise surface as opaque cast errors.
func requireUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apierror.BadRequest("invalid contact id")
	}
	return nil
}
