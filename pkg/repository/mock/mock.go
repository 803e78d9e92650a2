package mock

import (
	"context"
	"fmt"
	"sort"

	"github.com/garnizeh/crm/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	PersonRepo *PersonRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		PersonRepo: &PersonRepo{Stored: map[string]*models.Person{}},
	}
}

// PersonRepo is an in-memory PersonRepo for handler unit tests. Any of the
// error fields, when set, is returned by the matching method.
type PersonRepo struct {
	Stored    map[string]*models.Person
	nextID    int
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

func (m *PersonRepo) CreatePerson(ctx context.Context, p *models.Person) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.nextID++
	p.ID = fmt.Sprintf("person-%d", m.nextID)
	p.Created = int64(m.nextID)
	cp := *p
	m.Stored[p.ID] = &cp
	return nil
}

func (m *PersonRepo) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	return m.Stored[id], nil
}

func (m *PersonRepo) ListPeople(ctx context.Context) ([]models.Person, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	out := make([]models.Person, 0, len(m.Stored))
	for _, p := range m.Stored {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *PersonRepo) UpdatePerson(ctx context.Context, id string, u *models.PersonUpdate) (*models.Person, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}

	p, ok := m.Stored[id]
	if !ok {
		return nil, nil
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Telephone != nil {
		p.Telephone = *u.Telephone
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	return p, nil
}

func (m *PersonRepo) DeletePerson(ctx context.Context, id string) (bool, error) {
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}

	if _, ok := m.Stored[id]; !ok {
		return false, nil
	}
	delete(m.Stored, id)
	return true, nil
}
