// Package memory is the development backend's process-local repository.
// State is lost on restart; reference catalogues are seeded on creation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
)

// Store implements every domain repository interface in memory. It is safe
// for concurrent use; values are copied in and out.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	nextID        int64
	users         map[int64]*domain.User
	phones        map[string]int64
	otps          map[string]domain.OTPRecord
	revoked       map[string]time.Time
	advisories    map[int64][]domain.ChatHistoryEntry
	posts         map[int64]*postRecord
	notifications map[int64][]*domain.Notification
	prefs         map[int64]domain.NotificationPreferences
	soilTests     map[int64][]domain.SoilTest
	alerts        map[int64][]domain.PriceAlert
	avatars       map[int64]avatar

	catalog *catalog
}

type postRecord struct {
	post     domain.CommunityPost
	comments []domain.Comment
	likedBy  map[int64]bool
}

// New returns a store with the reference catalogues loaded
func New() *Store {
	return &Store{
		now:           time.Now,
		users:         make(map[int64]*domain.User),
		phones:        make(map[string]int64),
		otps:          make(map[string]domain.OTPRecord),
		revoked:       make(map[string]time.Time),
		advisories:    make(map[int64][]domain.ChatHistoryEntry),
		posts:         make(map[int64]*postRecord),
		notifications: make(map[int64][]*domain.Notification),
		prefs:         make(map[int64]domain.NotificationPreferences),
		soilTests:     make(map[int64][]domain.SoilTest),
		alerts:        make(map[int64][]domain.PriceAlert),
		avatars:       make(map[int64]avatar),
		catalog:       seedCatalog(time.Now()),
	}
}

// id must be called with mu held
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) timestamp() domain.Timestamp {
	return domain.NewTimestamp(s.now().UTC())
}

// page applies limit/offset to items. A non-positive limit returns the rest.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// Users

func (s *Store) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.phones[user.PhoneNumber]; ok {
		return domain.ErrAlreadyExists
	}
	user.ID = s.id()
	if user.CreatedAt == nil {
		ts := s.timestamp()
		user.CreatedAt = &ts
	}
	stored := *user
	s.users[user.ID] = &stored
	s.phones[user.PhoneNumber] = user.ID
	return nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (s *Store) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	s.mu.RLock()
	id, ok := s.phones[phone]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// OTPs

func (s *Store) SaveOTP(_ context.Context, rec *domain.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[rec.PhoneNumber] = *rec
	return nil
}

func (s *Store) GetOTP(_ context.Context, phone string) (*domain.OTPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.otps[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) DeleteOTP(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.otps, phone)
	return nil
}

// Token revocation

func (s *Store) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *Store) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	until, ok := s.revoked[tokenID]
	return ok && until.After(s.now()), nil
}

// Advisories

func (s *Store) AddAdvisory(_ context.Context, userID int64, entry *domain.ChatHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.id()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.timestamp()
	}
	s.advisories[userID] = append(s.advisories[userID], *entry)
	return nil
}

// ListAdvisories returns newest first
func (s *Store) ListAdvisories(_ context.Context, userID int64, limit, offset int) ([]domain.ChatHistoryEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.advisories[userID]
	out := make([]domain.ChatHistoryEntry, len(all))
	for i, entry := range all {
		out[len(all)-1-i] = entry
	}
	return page(out, limit, offset), len(out), nil
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	return ids
}
