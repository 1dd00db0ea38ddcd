package bunstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var _ contacts.Repo = (*ContactStore)(nil)

type ContactStore struct {
	db *bun.DB
}

func NewContactStore(db *bun.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (cs *ContactStore) Upsert(contact *contacts.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	record := newContactRecord(contact)
	_, err := cs.db.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("title = EXCLUDED.title").
		Set("phone = EXCLUDED.phone").
		Set("email = EXCLUDED.email").
		Set("location = EXCLUDED.location").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background())
	if err != nil {
		return errors.Wrap(err, "[ContactStore.Upsert] insert")
	}
	return nil
}

func (cs *ContactStore) Delete(contactID string) error {
	res, err := cs.db.NewDelete().
		Model((*contactRecord)(nil)).
		Where("id = ?", contactID).
		Exec(context.Background())
	if err != nil {
		return errors.Wrap(err, "[ContactStore.Delete] delete")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (cs *ContactStore) Get(contactID string) (*contacts.Contact, error) {
	record := new(contactRecord)
	err := cs.db.NewSelect().
		Model(record).
		Where("id = ?", contactID).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[ContactStore.Get] select")
	}
	return record.toDomain(), nil
}

func (cs *ContactStore) ListByCompany(companyID string, offset, limit int) ([]*contacts.Contact, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []contactRecord
	err := cs.db.NewSelect().
		Model(&records).
		Where("company_id = ?", companyID).
		OrderExpr("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "[ContactStore.ListByCompany] select")
	}

	list := make([]*contacts.Contact, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}
