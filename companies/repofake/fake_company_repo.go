package fakecompanyrepo

import (
	"sort"
	"sync"

	"github.com/cardlinkhq/cardlink-server/companies"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/google/uuid"
)

var _ companies.Repo = (*FakeCompanyRepo)(nil)

type FakeCompanyRepo struct {
	companies map[string]*companies.Company
	emailIds  map[string]string // normalized email to company id
	lock      sync.RWMutex
}

func NewFakeCompanyRepo() *FakeCompanyRepo {
	return &FakeCompanyRepo{
		companies: make(map[string]*companies.Company),
		emailIds:  make(map[string]string),
	}
}

func (cr *FakeCompanyRepo) Upsert(company *companies.Company) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	company.Email = companies.NormalizeEmail(company.Email)
	cr.companies[company.ID] = company
	cr.emailIds[company.Email] = company.ID
	return nil
}

func (cr *FakeCompanyRepo) Delete(companyID string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	company, ok := cr.companies[companyID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(cr.emailIds, company.Email)
	delete(cr.companies, companyID)
	return nil
}

func (cr *FakeCompanyRepo) Get(companyID string) (*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	company, ok := cr.companies[companyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return company, nil
}

func (cr *FakeCompanyRepo) GetByEmail(email string) (*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	id, ok := cr.emailIds[companies.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cr.companies[id], nil
}

func (cr *FakeCompanyRepo) List(offset, limit int) ([]*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	list := make([]*companies.Company, 0, len(cr.companies))
	for _, c := range cr.companies {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	if offset >= len(list) {
		return []*companies.Company{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}
