package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/joanmiespada/backender/internal/core/domain"
)

func TestUserService_CreateUser_Success(t *testing.T) {
	f := newServiceFixture()

	user, err := f.service.CreateUser(context.Background(), "keycloak-7f3a")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID == "" {
		t.Error("expected generated user ID")
	}
	if user.ExternalID != "keycloak-7f3a" {
		t.Errorf("expected external ID 'keycloak-7f3a', got %s", user.ExternalID)
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected creation timestamp to be set")
	}

	if f.events.count("user.created") != 1 {
		t.Errorf("expected one user.created event, got %d", f.events.count("user.created"))
	}
}

func TestUserService_CreateUser_TrimsExternalID(t *testing.T) {
	f := newServiceFixture()

	user, err := f.service.CreateUser(context.Background(), "  keycloak-7f3a  ")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ExternalID != "keycloak-7f3a" {
		t.Errorf("expected trimmed external ID, got %q", user.ExternalID)
	}
}

func TestUserService_CreateUser_EmptyExternalID(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.CreateUser(context.Background(), "   ")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "external_id" {
		t.Errorf("expected field 'external_id', got %s", validationErr.Field)
	}
}

func TestUserService_CreateUser_DuplicateExternalID(t *testing.T) {
	f := newServiceFixture()

	if _, err := f.service.CreateUser(context.Background(), "keycloak-7f3a"); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	_, err := f.service.CreateUser(context.Background(), "keycloak-7f3a")
	if !errors.Is(err, ErrExternalIDExists) {
		t.Fatalf("expected ErrExternalIDExists, got %v", err)
	}

	if f.events.count("user.created") != 1 {
		t.Errorf("expected no event for the rejected create, got %d", f.events.count("user.created"))
	}
}

func TestUserService_CreateUser_InvalidatesListCache(t *testing.T) {
	f := newServiceFixture()

	page := domain.PageRequest{Page: 1, PageSize: 20}
	if _, err := f.service.ListUsers(context.Background(), page); err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if !f.cache.has(usersListKey(page)) {
		t.Fatal("expected users list page to be cached")
	}

	if _, err := f.service.CreateUser(context.Background(), "keycloak-7f3a"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if f.cache.has(usersListKey(page)) {
		t.Error("expected users list cache to be invalidated after create")
	}
	if !f.cache.deletedPattern(usersListPattern) {
		t.Error("expected users list pattern invalidation")
	}
}

func TestUserService_GetUser_CachesOnMiss(t *testing.T) {
	f := newServiceFixture()
	f.users.users["u1"] = domain.User{ID: "u1", ExternalID: "ext-1", CreatedAt: time.Now().UTC()}

	user, err := f.service.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected user u1, got %s", user.ID)
	}

	if !f.cache.has(userKey("u1")) {
		t.Error("expected user to be cached after repository read")
	}

	// Remove the backing row; the cached copy must still serve reads.
	delete(f.users.users, "u1")

	cached, err := f.service.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("cached GetUser failed: %v", err)
	}
	if cached.ExternalID != "ext-1" {
		t.Errorf("expected cached external ID 'ext-1', got %s", cached.ExternalID)
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.GetUser(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetUser_CacheFailureFallsThrough(t *testing.T) {
	f := newServiceFixture()
	f.users.users["u1"] = domain.User{ID: "u1", ExternalID: "ext-1"}
	f.cache.getErr = errors.New("connection refused")

	user, err := f.service.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected repository fallback, got %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected user u1, got %s", user.ID)
	}
}

func TestUserService_GetUser_CorruptCacheEntryDropped(t *testing.T) {
	f := newServiceFixture()
	f.users.users["u1"] = domain.User{ID: "u1", ExternalID: "ext-1"}
	f.cache.entries[userKey("u1")] = "{not json"

	user, err := f.service.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.ExternalID != "ext-1" {
		t.Errorf("expected repository copy, got %+v", user)
	}
}

func TestUserService_GetUserByExternalID(t *testing.T) {
	f := newServiceFixture()
	f.users.users["u1"] = domain.User{ID: "u1", ExternalID: "ext-1"}

	user, err := f.service.GetUserByExternalID(context.Background(), "ext-1")
	if err != nil {
		t.Fatalf("GetUserByExternalID failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected user u1, got %s", user.ID)
	}

	_, err = f.service.GetUserByExternalID(context.Background(), "ext-2")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListUsers_Pagination(t *testing.T) {
	f := newServiceFixture()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("u%d", i)
		f.users.users[id] = domain.User{
			ID:         id,
			ExternalID: fmt.Sprintf("ext-%d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
	}

	page, err := f.service.ListUsers(context.Background(), domain.PageRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	if page.Total != 5 {
		t.Errorf("expected total 5, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].ID != "u2" || page.Items[1].ID != "u3" {
		t.Errorf("unexpected page contents: %s, %s", page.Items[0].ID, page.Items[1].ID)
	}
}

func TestUserService_ListUsers_BeyondLastPage(t *testing.T) {
	f := newServiceFixture()
	f.users.users["u1"] = domain.User{ID: "u1", ExternalID: "ext-1"}

	page, err := f.service.ListUsers(context.Background(), domain.PageRequest{Page: 9, PageSize: 20})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	if len(page.Items) != 0 {
		t.Errorf("expected empty page, got %d items", len(page.Items))
	}
	if page.Total != 1 {
		t.Errorf("expected total 1, got %d", page.Total)
	}
	if page.TotalPages != 1 {
		t.Errorf("expected 1 total page, got %d", page.TotalPages)
	}
}

func TestUserService_ListUsers_RejectsBadPagination(t *testing.T) {
	f := newServiceFixture()

	cases := []struct {
		name  string
		page  domain.PageRequest
		field string
	}{
		{"zero page", domain.PageRequest{Page: 0, PageSize: 20}, "page"},
		{"zero page size", domain.PageRequest{Page: 1, PageSize: 0}, "page_size"},
		{"oversized page size", domain.PageRequest{Page: 1, PageSize: domain.MaxPageSize + 1}, "page_size"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.ListUsers(context.Background(), tc.page)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, validationErr.Field)
			}
		})
	}
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	f := newServiceFixture()
	f.users.users["u1"] = domain.User{ID: "u1", ExternalID: "ext-1"}

	// Warm the caches that the delete must clear.
	if _, err := f.service.GetUser(context.Background(), "u1"); err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	if err := f.service.DeleteUser(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if f.cache.has(userKey("u1")) {
		t.Error("expected user cache entry to be invalidated")
	}
	if !f.cache.deletedPattern(usersListPattern) {
		t.Error("expected users list pattern invalidation")
	}
	if f.events.count("user.deleted") != 1 {
		t.Errorf("expected one user.deleted event, got %d", f.events.count("user.deleted"))
	}

	if err := f.service.DeleteUser(context.Background(), "u1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_NilCacheAndEvents(t *testing.T) {
	users := &userRepoMock{users: make(map[string]domain.User)}
	roles := &roleRepoMock{roles: make(map[string]domain.Role)}
	userRoles := &userRoleRepoMock{assigned: make(map[string]bool)}

	service := NewUserService(users, roles, userRoles, nil, CacheTTLs{}, nil, nil)

	user, err := service.CreateUser(context.Background(), "ext-1")
	if err != nil {
		t.Fatalf("CreateUser without cache failed: %v", err)
	}

	got, err := service.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUser without cache failed: %v", err)
	}
	if got.ExternalID != "ext-1" {
		t.Errorf("expected external ID 'ext-1', got %s", got.ExternalID)
	}
}
