package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/core/port"
	"github.com/joanmiespada/backender/internal/repository"
)

// Mock repositories backed by maps, with error injection per operation.

type userRepoMock struct {
	users     map[string]domain.User
	createErr error
	getErr    error
	deleteErr error
	listErr   error
}

func (m *userRepoMock) byExternalID(externalID string) (*domain.User, bool) {
	for _, user := range m.users {
		if user.ExternalID == externalID {
			u := user
			return &u, true
		}
	}
	return nil, false
}

func (m *userRepoMock) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byExternalID(user.ExternalID); exists {
		return repository.ErrDuplicateExternalID
	}
	if m.users == nil {
		m.users = make(map[string]domain.User)
	}
	m.users[user.ID] = user
	return nil
}

func (m *userRepoMock) GetByID(_ context.Context, id string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if user, ok := m.users[id]; ok {
		return &user, nil
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoMock) GetByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if user, ok := m.byExternalID(externalID); ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoMock) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, exists := m.users[id]; !exists {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *userRepoMock) sorted() []domain.User {
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users
}

func pageSlice[T any](items []T, page domain.PageRequest) []T {
	offset := (page.Page - 1) * page.PageSize
	if offset >= len(items) {
		return nil
	}
	end := offset + page.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (m *userRepoMock) List(_ context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	all := m.sorted()
	return pageSlice(all, page), int64(len(all)), nil
}

func (m *userRepoMock) ListByRole(_ context.Context, _ string, page domain.PageRequest) ([]domain.User, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	all := m.sorted()
	return pageSlice(all, page), int64(len(all)), nil
}

type roleRepoMock struct {
	roles       map[string]domain.Role
	rolesByUser map[string][]domain.Role
	createErr   error
	updateErr   error
	deleteErr   error
	listErr     error
}

func (m *roleRepoMock) byName(name string) (*domain.Role, bool) {
	for _, role := range m.roles {
		if role.Name == name {
			r := role
			return &r, true
		}
	}
	return nil, false
}

func (m *roleRepoMock) Create(_ context.Context, role domain.Role) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byName(role.Name); exists {
		return repository.ErrDuplicateRoleName
	}
	if m.roles == nil {
		m.roles = make(map[string]domain.Role)
	}
	m.roles[role.ID] = role
	return nil
}

func (m *roleRepoMock) GetByID(_ context.Context, id string) (*domain.Role, error) {
	if role, ok := m.roles[id]; ok {
		return &role, nil
	}
	return nil, repository.ErrNotFound
}

func (m *roleRepoMock) GetByName(_ context.Context, name string) (*domain.Role, error) {
	if role, ok := m.byName(name); ok {
		return role, nil
	}
	return nil, repository.ErrNotFound
}

func (m *roleRepoMock) Update(_ context.Context, role domain.Role) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, exists := m.roles[role.ID]
	if !exists {
		return repository.ErrNotFound
	}
	if other, ok := m.byName(role.Name); ok && other.ID != role.ID {
		return repository.ErrDuplicateRoleName
	}
	existing.Name = role.Name
	m.roles[role.ID] = existing
	return nil
}

func (m *roleRepoMock) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, exists := m.roles[id]; !exists {
		return repository.ErrNotFound
	}
	delete(m.roles, id)
	return nil
}

func (m *roleRepoMock) List(_ context.Context, page domain.PageRequest) ([]domain.Role, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	roles := make([]domain.Role, 0, len(m.roles))
	for _, role := range m.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return pageSlice(roles, page), int64(len(roles)), nil
}

func (m *roleRepoMock) ListByUser(_ context.Context, userID string) ([]domain.Role, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rolesByUser[userID], nil
}

type userRoleRepoMock struct {
	assigned    map[string]bool
	assignErr   error
	unassignErr error
}

func pairKey(userID, roleID string) string {
	return userID + "/" + roleID
}

func (m *userRoleRepoMock) Assign(_ context.Context, userID, roleID string) error {
	if m.assignErr != nil {
		return m.assignErr
	}
	key := pairKey(userID, roleID)
	if m.assigned[key] {
		return repository.ErrRoleAlreadyAssigned
	}
	if m.assigned == nil {
		m.assigned = make(map[string]bool)
	}
	m.assigned[key] = true
	return nil
}

func (m *userRoleRepoMock) Unassign(_ context.Context, userID, roleID string) error {
	if m.unassignErr != nil {
		return m.unassignErr
	}
	key := pairKey(userID, roleID)
	if !m.assigned[key] {
		return repository.ErrRoleNotAssigned
	}
	delete(m.assigned, key)
	return nil
}

// cacheMock is an in-memory port.Cache that records deletions so tests can
// assert invalidation behaviour. TTLs are stored but never enforced.
type cacheMock struct {
	mu              sync.Mutex
	entries         map[string]string
	deletedKeys     []string
	deletedPatterns []string
	getErr          error
	setErr          error
}

func newCacheMock() *cacheMock {
	return &cacheMock{entries: make(map[string]string)}
}

func (c *cacheMock) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	if value, ok := c.entries[key]; ok {
		return value, nil
	}
	return "", port.ErrCacheMiss
}

func (c *cacheMock) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *cacheMock) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.deletedKeys = append(c.deletedKeys, key)
	}
	return nil
}

func (c *cacheMock) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletedPatterns = append(c.deletedPatterns, pattern)

	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if pattern == userRolesPattern {
			if strings.HasPrefix(key, "user:") && strings.HasSuffix(key, ":roles") {
				delete(c.entries, key)
			}
			continue
		}
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *cacheMock) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func (c *cacheMock) deletedPattern(pattern string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.deletedPatterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// eventRecorderMock captures published events by type.
type eventRecorderMock struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorderMock) record(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

func (r *eventRecorderMock) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == eventType {
			n++
		}
	}
	return n
}

func (r *eventRecorderMock) PublishUserCreated(_ context.Context, _ domain.UserCreatedEvent) error {
	r.record("user.created")
	return nil
}

func (r *eventRecorderMock) PublishUserDeleted(_ context.Context, _ domain.UserDeletedEvent) error {
	r.record("user.deleted")
	return nil
}

func (r *eventRecorderMock) PublishRoleCreated(_ context.Context, _ domain.RoleCreatedEvent) error {
	r.record("role.created")
	return nil
}

func (r *eventRecorderMock) PublishRoleUpdated(_ context.Context, _ domain.RoleUpdatedEvent) error {
	r.record("role.updated")
	return nil
}

func (r *eventRecorderMock) PublishRoleDeleted(_ context.Context, _ domain.RoleDeletedEvent) error {
	r.record("role.deleted")
	return nil
}

func (r *eventRecorderMock) PublishRoleAssigned(_ context.Context, _ domain.RoleAssignedEvent) error {
	r.record("user.role.assigned")
	return nil
}

func (r *eventRecorderMock) PublishRoleUnassigned(_ context.Context, _ domain.RoleUnassignedEvent) error {
	r.record("user.role.unassigned")
	return nil
}

type serviceFixture struct {
	users     *userRepoMock
	roles     *roleRepoMock
	userRoles *userRoleRepoMock
	cache     *cacheMock
	events    *eventRecorderMock
	service   *UserService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		users:     &userRepoMock{users: make(map[string]domain.User)},
		roles:     &roleRepoMock{roles: make(map[string]domain.Role)},
		userRoles: &userRoleRepoMock{assigned: make(map[string]bool)},
		cache:     newCacheMock(),
		events:    &eventRecorderMock{},
	}
	f.service = NewUserService(f.users, f.roles, f.userRoles, f.cache, DefaultCacheTTLs(), f.events, nil)
	return f
}
