package store

import (
	"sync"

	"github.com/neulab/globalbench/pkg/core"
)

// UserStore holds registered contributors in memory.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]core.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]core.User)}
}

// Create registers a user.
func (s *UserStore) Create(user core.User) (core.User, error) {
	if user.ID == "" {
		return core.User{}, errorf(400, "user id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return core.User{}, errorf(400, "user %s already exists", user.ID)
	}
	s.users[user.ID] = user
	return user, nil
}

// Find returns a user by id or email, or nil when no user matches.
func (s *UserStore) Find(idOrEmail string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []core.User
	for _, user := range s.users {
		if user.ID == idOrEmail || user.Email == idOrEmail {
			found = append(found, user)
		}
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		user := found[0]
		return &user, nil
	default:
		return nil, errorf(500, "%s matches multiple users", idOrEmail)
	}
}

// FindAll returns the users for every id; a missing id is an error since it
// means a system references a creator that was never registered.
func (s *UserStore) FindAll(ids []string) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]core.User, 0, len(ids))
	var missing []string
	for _, id := range ids {
		user, ok := s.users[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		users = append(users, user)
	}
	if len(missing) > 0 {
		return nil, errorf(500, "creator ID(s) %v not found", missing)
	}
	return users, nil
}

// PreferredUsernames resolves creator ids to preferred usernames in one
// batch, deduplicating ids first.
func (s *UserStore) PreferredUsernames(ids []string) (map[string]string, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	users, err := s.FindAll(unique)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(users))
	for _, user := range users {
		out[user.ID] = user.PreferredUsername
	}
	return out, nil
}
