package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

type accountRepo struct{ s *Store }

func (r accountRepo) Create(_ context.Context, a *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{a.TenantID, a.ID}
	if _, ok := r.s.accounts[k]; ok {
		return uniqueViolation("accounts")
	}
	r.s.accounts[k] = *a
	return nil
}

func (r accountRepo) Update(_ context.Context, a *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{a.TenantID, a.ID}
	if _, ok := r.s.accounts[k]; !ok {
		return pgx.ErrNoRows
	}
	r.s.accounts[k] = *a
	return nil
}

func (r accountRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Account, error) {
	return get(r.s, func(s *Store) map[key]domain.Account { return s.accounts }, tenantID, id)
}

func (r accountRepo) List(_ context.Context, tenantID string, filter repository.ListFilter) ([]domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Account{}
	for _, a := range r.s.accounts {
		if a.TenantID == tenantID && matches(filter.Search, &a.Name, a.Website) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b domain.Account) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})
	return page(out, filter), nil
}

func (r accountRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.accounts[k]; !ok {
		return pgx.ErrNoRows
	}
	for _, c := range r.s.contacts {
		if c.TenantID == tenantID && eqPtr(&id, c.AccountID) {
			return foreignKeyViolation("contacts")
		}
	}
	for _, d := range r.s.deals {
		if d.TenantID == tenantID && eqPtr(&id, d.AccountID) {
			return foreignKeyViolation("deals")
		}
	}
	delete(r.s.accounts, k)
	r.s.cascade(tenantID, func(account, _, _, _ *string) bool { return eqPtr(&id, account) })
	return nil
}

type contactRepo struct{ s *Store }

func (r contactRepo) Create(_ context.Context, c *domain.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{c.TenantID, c.ID}
	if _, ok := r.s.contacts[k]; ok {
		return uniqueViolation("contacts")
	}
	if !reference(r.s.accounts, c.TenantID, c.AccountID) {
		return foreignKeyViolation("contacts")
	}
	r.s.contacts[k] = *c
	return nil
}

func (r contactRepo) Update(_ context.Context, c *domain.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{c.TenantID, c.ID}
	if _, ok := r.s.contacts[k]; !ok {
		return pgx.ErrNoRows
	}
	if !reference(r.s.accounts, c.TenantID, c.AccountID) {
		return foreignKeyViolation("contacts")
	}
	r.s.contacts[k] = *c
	return nil
}

func (r contactRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Contact, error) {
	return get(r.s, func(s *Store) map[key]domain.Contact { return s.contacts }, tenantID, id)
}

func (r contactRepo) List(_ context.Context, tenantID string, filter repository.ListFilter) ([]domain.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Contact{}
	for _, c := range r.s.contacts {
		if c.TenantID == tenantID && eqPtr(filter.AccountID, c.AccountID) && matches(filter.Search, &c.Name, c.Email) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Contact) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})
	return page(out, filter), nil
}

func (r contactRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.contacts[k]; !ok {
		return pgx.ErrNoRows
	}
	for _, d := range r.s.deals {
		if d.TenantID == tenantID && eqPtr(&id, d.ContactID) {
			return foreignKeyViolation("deals")
		}
	}
	delete(r.s.contacts, k)
	r.s.cascade(tenantID, func(_, contact, _, _ *string) bool { return eqPtr(&id, contact) })
	return nil
}

func (r contactRepo) CountByAccount(_ context.Context, tenantID, accountID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, c := range r.s.contacts {
		if c.TenantID == tenantID && eqPtr(&accountID, c.AccountID) {
			n++
		}
	}
	return n, nil
}

type dealRepo struct{ s *Store }

func (r dealRepo) checkRefs(d *domain.Deal) error {
	if !reference(r.s.accounts, d.TenantID, d.AccountID) || !reference(r.s.contacts, d.TenantID, d.ContactID) {
		return foreignKeyViolation("deals")
	}
	return nil
}

func (r dealRepo) Create(_ context.Context, d *domain.Deal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{d.TenantID, d.ID}
	if _, ok := r.s.deals[k]; ok {
		return uniqueViolation("deals")
	}
	if err := r.checkRefs(d); err != nil {
		return err
	}
	r.s.deals[k] = *d
	return nil
}

func (r dealRepo) Update(_ context.Context, d *domain.Deal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{d.TenantID, d.ID}
	if _, ok := r.s.deals[k]; !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkRefs(d); err != nil {
		return err
	}
	r.s.deals[k] = *d
	return nil
}

func (r dealRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Deal, error) {
	return get(r.s, func(s *Store) map[key]domain.Deal { return s.deals }, tenantID, id)
}

func (r dealRepo) List(_ context.Context, tenantID string, filter repository.ListFilter) ([]domain.Deal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Deal{}
	for _, d := range r.s.deals {
		if d.TenantID == tenantID &&
			eqPtr(filter.AccountID, d.AccountID) &&
			eqPtr(filter.ContactID, d.ContactID) &&
			eqStr(filter.Stage, string(d.Stage)) &&
			matches(filter.Search, &d.Title) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b domain.Deal) int {
		return cmp.Or(cmp.Compare(b.UpdatedAt, a.UpdatedAt), strings.Compare(a.ID, b.ID))
	})
	return page(out, filter), nil
}

func (r dealRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.deals[k]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.deals, k)
	r.s.cascade(tenantID, func(_, _, deal, _ *string) bool { return eqPtr(&id, deal) })
	return nil
}

type leadRepo struct{ s *Store }

func (r leadRepo) Create(_ context.Context, l *domain.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{l.TenantID, l.ID}
	if _, ok := r.s.leads[k]; ok {
		return uniqueViolation("leads")
	}
	r.s.leads[k] = *l
	return nil
}

func (r leadRepo) Update(_ context.Context, l *domain.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{l.TenantID, l.ID}
	if _, ok := r.s.leads[k]; !ok {
		return pgx.ErrNoRows
	}
	r.s.leads[k] = *l
	return nil
}

func (r leadRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Lead, error) {
	return get(r.s, func(s *Store) map[key]domain.Lead { return s.leads }, tenantID, id)
}

func (r leadRepo) List(_ context.Context, tenantID string, filter repository.ListFilter) ([]domain.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Lead{}
	for _, l := range r.s.leads {
		if l.TenantID == tenantID && eqStr(filter.Status, string(l.Status)) && matches(filter.Search, &l.Name, l.Email, l.Company) {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b domain.Lead) int {
		return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return page(out, filter), nil
}

func (r leadRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.leads[k]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.leads, k)
	r.s.cascade(tenantID, func(_, _, _, lead *string) bool { return eqPtr(&id, lead) })
	return nil
}

type activityRepo struct{ s *Store }

func (r activityRepo) checkRefs(a *domain.Activity) error {
	s := r.s
	if !reference(s.accounts, a.TenantID, a.AccountID) || !reference(s.contacts, a.TenantID, a.ContactID) ||
		!reference(s.deals, a.TenantID, a.DealID) || !reference(s.leads, a.TenantID, a.LeadID) {
		return foreignKeyViolation("activities")
	}
	return nil
}

func (r activityRepo) Create(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{a.TenantID, a.ID}
	if _, ok := r.s.activities[k]; ok {
		return uniqueViolation("activities")
	}
	if err := r.checkRefs(a); err != nil {
		return err
	}
	r.s.activities[k] = *a
	return nil
}

func (r activityRepo) Update(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{a.TenantID, a.ID}
	if _, ok := r.s.activities[k]; !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkRefs(a); err != nil {
		return err
	}
	r.s.activities[k] = *a
	return nil
}

func (r activityRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Activity, error) {
	return get(r.s, func(s *Store) map[key]domain.Activity { return s.activities }, tenantID, id)
}

func (r activityRepo) List(_ context.Context, tenantID string, filter repository.ListFilter) ([]domain.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Activity{}
	for _, a := range r.s.activities {
		if a.TenantID != tenantID ||
			!eqStr(filter.Status, string(a.Status)) ||
			!eqPtr(filter.AccountID, a.AccountID) ||
			!eqPtr(filter.ContactID, a.ContactID) ||
			!eqPtr(filter.DealID, a.DealID) ||
			!eqPtr(filter.LeadID, a.LeadID) ||
			!matches(filter.Search, &a.Title, a.Notes) {
			continue
		}
		if filter.DueFrom != nil && (a.DueDate == nil || *a.DueDate < *filter.DueFrom) {
			continue
		}
		if filter.DueTo != nil && (a.DueDate == nil || *a.DueDate > *filter.DueTo) {
			continue
		}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b domain.Activity) int {
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return 1
		case a.DueDate != nil && b.DueDate == nil:
			return -1
		case a.DueDate != nil && b.DueDate != nil && *a.DueDate != *b.DueDate:
			return cmp.Compare(*a.DueDate, *b.DueDate)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return page(out, filter), nil
}

func (r activityRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.activities[k]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.activities, k)
	return nil
}

type noteRepo struct{ s *Store }

func (r noteRepo) checkRefs(n *domain.Note) error {
	s := r.s
	if !reference(s.accounts, n.TenantID, n.AccountID) || !reference(s.contacts, n.TenantID, n.ContactID) ||
		!reference(s.deals, n.TenantID, n.DealID) || !reference(s.leads, n.TenantID, n.LeadID) {
		return foreignKeyViolation("notes")
	}
	return nil
}

func (r noteRepo) Create(_ context.Context, n *domain.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{n.TenantID, n.ID}
	if _, ok := r.s.notes[k]; ok {
		return uniqueViolation("notes")
	}
	if err := r.checkRefs(n); err != nil {
		return err
	}
	r.s.notes[k] = *n
	return nil
}

func (r noteRepo) Update(_ context.Context, n *domain.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{n.TenantID, n.ID}
	if _, ok := r.s.notes[k]; !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkRefs(n); err != nil {
		return err
	}
	r.s.notes[k] = *n
	return nil
}

func (r noteRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Note, error) {
	return get(r.s, func(s *Store) map[key]domain.Note { return s.notes }, tenantID, id)
}

func (r noteRepo) List(_ context.Context, tenantID string, filter repository.ListFilter) ([]domain.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Note{}
	for _, n := range r.s.notes {
		if n.TenantID == tenantID &&
			eqPtr(filter.AccountID, n.AccountID) &&
			eqPtr(filter.ContactID, n.ContactID) &&
			eqPtr(filter.DealID, n.DealID) &&
			eqPtr(filter.LeadID, n.LeadID) &&
			matches(filter.Search, &n.Body) {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b domain.Note) int {
		return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return page(out, filter), nil
}

func (r noteRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{tenantID, id}
	if _, ok := r.s.notes[k]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.notes, k)
	return nil
}

// cascade removes activities and notes whose parents match. Callers hold mu.
func (s *Store) cascade(tenantID string, parent func(account, contact, deal, lead *string) bool) {
	for k, a := range s.activities {
		if k.tenant == tenantID && parent(a.AccountID, a.ContactID, a.DealID, a.LeadID) {
			delete(s.activities, k)
		}
	}
	for k, n := range s.notes {
		if k.tenant == tenantID && parent(n.AccountID, n.ContactID, n.DealID, n.LeadID) {
			delete(s.notes, k)
		}
	}
}
