package contacts

type Repo interface {
	Upsert(contact *Contact) error
	Delete(contactID string) error
	Get(contactID string) (*Contact, error)
	ListByCompany(companyID string, offset, limit int) ([]*Contact, error)
}
