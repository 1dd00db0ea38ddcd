package fakecontactrepo

import (
	"sort"
	"sync"
	"time"

	"github.com/cardlinkhq/cardlink-server/contacts"
	"github.com/cardlinkhq/cardlink-server/internal/apperrors"
	"github.com/google/uuid"
)

var _ contacts.Repo = (*FakeContactRepo)(nil)

type FakeContactRepo struct {
	contacts map[string]*contacts.Contact
	lock     sync.RWMutex
}

func NewFakeContactRepo() *FakeContactRepo {
	return &FakeContactRepo{
		contacts: make(map[string]*contacts.Contact),
	}
}

func (cr *FakeContactRepo) Upsert(contact *contacts.Contact) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	contact.UpdatedAt = time.Now()
	cr.contacts[contact.ID] = contact
	return nil
}

func (cr *FakeContactRepo) Delete(contactID string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if _, ok := cr.contacts[contactID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(cr.contacts, contactID)
	return nil
}

func (cr *FakeContactRepo) Get(contactID string) (*contacts.Contact, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	contact, ok := cr.contacts[contactID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

func (cr *FakeContactRepo) ListByCompany(companyID string, offset, limit int) ([]*contacts.Contact, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	list := make([]*contacts.Contact, 0)
	for _, c := range cr.contacts {
		if c.CompanyID == companyID {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	if offset >= len(list) {
		return []*contacts.Contact{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}
