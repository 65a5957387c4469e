package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var errStoreDown = errors.New("connection refused")

type rowID struct {
	section Section
	key     string
}

// memStore is an in-memory Store that counts reads and can be switched into
// failure modes.
type memStore struct {
	mu        sync.Mutex
	rows      map[rowID]ContentRow
	nextID    int64
	listCalls atomic.Int64

	failList   bool
	failUpdate map[rowID]bool
	listDelay  time.Duration
}

func newMemStore(rows ...ContentRow) *memStore {
	s := &memStore{rows: make(map[rowID]ContentRow), failUpdate: make(map[rowID]bool)}
	for _, r := range rows {
		s.nextID++
		r.ID = s.nextID
		s.rows[rowID{r.Section, r.Key}] = r
	}
	return s
}

// seeded returns a store holding every default field.
func seeded() *memStore {
	var rows []ContentRow
	tree := DefaultTree()
	for _, sec := range Sections() {
		for _, key := range Fields(sec) {
			v, _ := tree.Get(sec, key)
			rows = append(rows, ContentRow{Section: sec, Key: key, Value: v})
		}
	}
	return newMemStore(rows...)
}

func (s *memStore) ListAll(ctx context.Context) ([]ContentRow, error) {
	s.listCalls.Add(1)
	if s.listDelay > 0 {
		time.Sleep(s.listDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList {
		return nil, &StorageError{Op: "list", Err: errStoreDown}
	}
	out := make([]ContentRow, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, nil
}

func (s *memStore) Update(ctx context.Context, section Section, key, value string, updatedBy int64) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := rowID{section, key}
	if s.failUpdate[id] {
		return UpdateResult{}, &StorageError{Op: "update", Err: errStoreDown}
	}
	r, ok := s.rows[id]
	if !ok {
		return UpdateResult{Status: StatusNotFound}, nil
	}
	r.Value = value
	r.UpdatedBy = &updatedBy
	r.UpdatedAt = time.Now()
	s.rows[id] = r
	return UpdateResult{Status: StatusUpdated, Row: r}, nil
}

func (s *memStore) Upsert(ctx context.Context, section Section, key, value string, updatedBy *int64) (ContentRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := rowID{section, key}
	r, ok := s.rows[id]
	if !ok {
		s.nextID++
		r = ContentRow{ID: s.nextID, Section: section, Key: key, CreatedAt: time.Now()}
	}
	r.Value = value
	r.UpdatedBy = updatedBy
	r.UpdatedAt = time.Now()
	s.rows[id] = r
	return r, nil
}

func (s *memStore) value(section Section, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[rowID{section, key}]
	return r.Value, ok
}

// staticAdmins is an AdminChecker backed by a fixed set of user ids.
type staticAdmins struct {
	admins map[int64]bool
	err    error
}

func (a staticAdmins) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	return a.admins[userID], nil
}

// countingInvalidator records InvalidateTag calls.
type countingInvalidator struct {
	mu    sync.Mutex
	tags  []string
	inner interface {
		InvalidateTag(ctx context.Context, tag string) error
	}
}

func (c *countingInvalidator) InvalidateTag(ctx context.Context, tag string) error {
	c.mu.Lock()
	c.tags = append(c.tags, tag)
	c.mu.Unlock()
	if c.inner != nil {
		return c.inner.InvalidateTag(ctx, tag)
	}
	return nil
}

func (c *countingInvalidator) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tags...)
}
