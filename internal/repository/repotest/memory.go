// Package repotest holds in-memory repository implementations for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"royalcert/internal/models"
	"royalcert/internal/repository"

	"github.com/google/uuid"
)

type Users struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func NewUsers(users ...models.User) *Users {
	r := &Users{byID: map[string]models.User{}}
	for _, u := range users {
		_ = r.Create(context.Background(), &u)
	}
	return r
}

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	r.byID[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) List(_ context.Context, f repository.UserFilter) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.byID {
		if f.Role == "" || u.Role == f.Role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *Users) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.byID {
		if id != u.ID && other.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now()
	r.byID[u.ID] = *u
	return nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Users) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

type Customers struct {
	mu   sync.Mutex
	byID map[string]models.Customer
}

func NewCustomers(customers ...models.Customer) *Customers {
	r := &Customers{byID: map[string]models.Customer{}}
	for _, c := range customers {
		_ = r.Create(context.Background(), &c)
	}
	return r
}

func (r *Customers) Create(_ context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Equipments == nil {
		c.Equipments = []models.Equipment{}
	}
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	r.byID[c.ID] = *c
	return nil
}

func (r *Customers) GetByID(_ context.Context, id string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *Customers) List(_ context.Context, query string) ([]models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Customer{}
	for _, c := range r.byID {
		if q == "" || strings.Contains(strings.ToLower(c.CompanyName), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out, nil
}

func (r *Customers) Update(_ context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.byID[c.ID] = *c
	return nil
}

func (r *Customers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Customers) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

// Templates also counts reads so cache tests can tell hits from misses.
type Templates struct {
	mu    sync.Mutex
	byID  map[string]models.EquipmentTemplate
	Reads int
}

func NewTemplates(templates ...models.EquipmentTemplate) *Templates {
	r := &Templates{byID: map[string]models.EquipmentTemplate{}}
	for _, t := range templates {
		_ = r.Create(context.Background(), &t)
	}
	return r
}

func (r *Templates) Create(_ context.Context, t *models.EquipmentTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt, t.UpdatedAt = time.Now(), time.Now()
	r.byID[t.ID] = *t
	return nil
}

func (r *Templates) GetByID(_ context.Context, id string) (*models.EquipmentTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *Templates) List(_ context.Context, f repository.TemplateFilter) ([]models.EquipmentTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	out := []models.EquipmentTemplate{}
	for _, t := range r.byID {
		if f.EquipmentType != "" && !strings.EqualFold(t.EquipmentType, f.EquipmentType) {
			continue
		}
		if f.TemplateType != "" && t.TemplateType != f.TemplateType {
			continue
		}
		if f.Active != nil && t.IsActive != *f.Active {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Templates) FindActiveForm(_ context.Context, equipmentType string) (*models.EquipmentTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	var best *models.EquipmentTemplate
	for _, t := range r.byID {
		if !t.IsActive || t.TemplateType != models.TemplateForm || !strings.EqualFold(t.EquipmentType, equipmentType) {
			continue
		}
		if best == nil || t.UpdatedAt.After(best.UpdatedAt) {
			t := t
			best = &t
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

func (r *Templates) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *Templates) Update(_ context.Context, t *models.EquipmentTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; !ok {
		return repository.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	r.byID[t.ID] = *t
	return nil
}

func (r *Templates) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Templates) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

type Inspections struct {
	mu   sync.Mutex
	byID map[string]models.Inspection
}

func NewInspections(inspections ...models.Inspection) *Inspections {
	r := &Inspections{byID: map[string]models.Inspection{}}
	for _, i := range inspections {
		_ = r.Create(context.Background(), &i)
	}
	return r
}

func (r *Inspections) Create(_ context.Context, i *models.Inspection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := i.BeforeCreate(nil); err != nil {
		return err
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	i.UpdatedAt = time.Now()
	r.byID[i.ID] = *i
	return nil
}

func (r *Inspections) GetByID(_ context.Context, id string) (*models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &i, nil
}

func match(i models.Inspection, f repository.InspectionFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if i.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CustomerID != "" && i.CustomerID != f.CustomerID {
		return false
	}
	if f.InspectorID != "" && i.InspectorID != f.InspectorID {
		return false
	}
	if f.SerialNumber != "" && i.EquipmentInfo.SerialNumber != f.SerialNumber {
		return false
	}
	if f.ApprovedSince != nil && (i.ApprovedAt == nil || i.ApprovedAt.Before(*f.ApprovedSince)) {
		return false
	}
	return true
}

func (r *Inspections) List(_ context.Context, f repository.InspectionFilter) ([]models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Inspection{}
	for _, i := range r.byID {
		if match(i, f) {
			out = append(out, i)
		}
	}
	if f.BySubmission {
		sort.Slice(out, func(a, b int) bool {
			sa, sb := out[a].SubmittedAt, out[b].SubmittedAt
			switch {
			case sa == nil:
				return false
			case sb == nil:
				return true
			}
			return sa.Before(*sb)
		})
	} else {
		sort.Slice(out, func(a, b int) bool { return out[a].PlannedDate.After(out[b].PlannedDate) })
	}
	return out, nil
}

func (r *Inspections) Count(ctx context.Context, f repository.InspectionFilter) (int64, error) {
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r *Inspections) Modify(_ context.Context, id string, fn func(*models.Inspection) error) (*models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := fn(&i); err != nil {
		return nil, err
	}
	i.UpdatedAt = time.Now()
	r.byID[id] = i
	return &i, nil
}

func (r *Inspections) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type Audit struct {
	mu   sync.Mutex
	Logs []models.AuditLog
}

func NewAudit() *Audit { return &Audit{} }

func (r *Audit) Create(_ context.Context, l *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = uint(len(r.Logs) + 1)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.Logs = append(r.Logs, *l)
	return nil
}

func (r *Audit) List(_ context.Context, f repository.AuditFilter) ([]models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.AuditLog{}
	for _, l := range r.Logs {
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.EntityID != "" && l.EntityID != f.EntityID {
			continue
		}
		out = append(out, l)
	}
	if !f.OldestFirst {
		for a, b := 0, len(out)-1; a < b; a, b = a+1, b-1 {
			out[a], out[b] = out[b], out[a]
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

var (
	_ repository.UserRepository       = (*Users)(nil)
	_ repository.CustomerRepository   = (*Customers)(nil)
	_ repository.TemplateRepository   = (*Templates)(nil)
	_ repository.InspectionRepository = (*Inspections)(nil)
	_ repository.AuditRepository      = (*Audit)(nil)
)
