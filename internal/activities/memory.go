package activities

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryActivity struct {
	Activity
	members map[string]struct{}
}

type memoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*memoryActivity
	names map[string]string
}

// NewMemoryStore builds a concurrency-safe in-memory activity store for
// tests and database-less development runs.
func NewMemoryStore() Store {
	return &memoryStore{
		byID:  make(map[string]*memoryActivity),
		names: make(map[string]string),
	}
}

func (s *memoryStore) List(_ context.Context) ([]Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Activity, 0, len(s.byID))
	for _, stored := range s.byID {
		activity := stored.Activity
		activity.Participants = make([]string, 0, len(stored.members))
		for email := range stored.members {
			activity.Participants = append(activity.Participants, email)
		}
		sort.Strings(activity.Participants)
		result = append(result, activity)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *memoryStore) Signup(_ context.Context, activityName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.lookup(activityName)
	if err != nil {
		return err
	}
	if _, enrolled := stored.members[email]; enrolled {
		return ErrAlreadyEnrolled
	}
	stored.members[email] = struct{}{}
	return nil
}

func (s *memoryStore) Unregister(_ context.Context, activityName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.lookup(activityName)
	if err != nil {
		return err
	}
	if _, enrolled := stored.members[email]; !enrolled {
		return ErrNotEnrolled
	}
	delete(stored.members, email)
	return nil
}

func (s *memoryStore) SeedIfEmpty(_ context.Context, seed []Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.byID) > 0 {
		return nil
	}

	for _, activity := range seed {
		stored := &memoryActivity{Activity: activity, members: make(map[string]struct{})}
		stored.ID = uuid.New().String()
		stored.Participants = nil
		for _, email := range activity.Participants {
			stored.members[email] = struct{}{}
		}
		s.byID[stored.ID] = stored
		s.names[activity.Name] = stored.ID
	}
	return nil
}

// lookup requires the caller to hold the mutex.
func (s *memoryStore) lookup(activityName string) (*memoryActivity, error) {
	id, ok := s.names[activityName]
	if !ok {
		return nil, ErrNotFound
	}
	return s.byID[id], nil
}
