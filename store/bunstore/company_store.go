package bunstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var _ companies.Repo = (*CompanyStore)(nil)

type CompanyStore struct {
	db *bun.DB
}

func NewCompanyStore(db *bun.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

func (cs *CompanyStore) Upsert(company *companies.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now().UTC()
	}
	company.Email = companies.NormalizeEmail(company.Email)

	record := newCompanyRecord(company)
	_, err := cs.db.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("email = EXCLUDED.email").
		Set("password_hash = EXCLUDED.password_hash").
		Set("logo_url = EXCLUDED.logo_url").
		Set("website = EXCLUDED.website").
		Exec(context.Background())
	if err != nil {
		return errors.Wrap(err, "[CompanyStore.Upsert] insert")
	}
	return nil
}

func (cs *CompanyStore) Delete(companyID string) error {
	res, err := cs.db.NewDelete().
		Model((*companyRecord)(nil)).
		Where("id = ?", companyID).
		Exec(context.Background())
	if err != nil {
		return errors.Wrap(err, "[CompanyStore.Delete] delete")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (cs *CompanyStore) Get(companyID string) (*companies.Company, error) {
	record := new(companyRecord)
	err := cs.db.NewSelect().
		Model(record).
		Where("id = ?", companyID).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[CompanyStore.Get] select")
	}
	return record.toDomain(), nil
}

func (cs *CompanyStore) GetByEmail(email string) (*companies.Company, error) {
	record := new(companyRecord)
	err := cs.db.NewSelect().
		Model(record).
		Where("email = ?", companies.NormalizeEmail(email)).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[CompanyStore.GetByEmail] select")
	}
	return record.toDomain(), nil
}

func (cs *CompanyStore) List(offset, limit int) ([]*companies.Company, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []companyRecord
	err := cs.db.NewSelect().
		Model(&records).
		OrderExpr("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "[CompanyStore.List] select")
	}

	list := make([]*companies.Company, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}
