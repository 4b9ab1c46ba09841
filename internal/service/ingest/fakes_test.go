package ingest

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
	existsErr error
	createErr map[string]error
	creates   int
}

func newFakeEmployeeRepo(existing ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{
		employees: make(map[string]employee.Employee),
		createErr: make(map[string]error),
	}
	for _, e := range existing {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.employees[id]
	return ok, nil
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if err := r.createErr[e.ID]; err != nil {
		return employee.Employee{}, err
	}
	for _, existing := range r.employees {
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
		if existing.PAN == e.PAN {
			return employee.Employee{}, employee.ErrPANExists
		}
	}
	e.CreatedAt = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.employees)
}

type fakeTransactor struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
	beginErr  error
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.beginErr != nil {
		return t.beginErr
	}
	err := fn(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.rollbacks++
		return err
	}
	t.commits++
	return nil
}

type fakeAuditSink struct {
	mu      sync.Mutex
	entries []string
	err     error
}

func (s *fakeAuditSink) Append(ctx context.Context, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

type fakeFileStorage struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	err      error
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{uploaded: make(map[string][]byte)}
}

func (s *fakeFileStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.uploaded[path] = data
	return path, nil
}
