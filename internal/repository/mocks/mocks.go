package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/domain/user"
	"github.com/mlevin/applytrack/internal/repository"
)

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// ApplicationRepository is a mock for repository.ApplicationRepository.
type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Get(ctx context.Context, ownerID, id string) (*application.Application, error) {
	args := m.Called(ctx, ownerID, id)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) ListByOwner(ctx context.Context, ownerID string) ([]application.Application, error) {
	args := m.Called(ctx, ownerID)
	if apps, ok := args.Get(0).([]application.Application); ok {
		return apps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) UpdateFields(ctx context.Context, ownerID, id string, patch application.FieldPatch) (*application.Application, error) {
	args := m.Called(ctx, ownerID, id, patch)
	if app, ok := args.Get(0).(*application.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

// FakeBoardStore is an in-memory repository.BoardStore with real
// transaction semantics: fn runs against a copy of the state, and the copy
// replaces the state only when fn succeeds. FailOn injects a failure into a
// named tx operation to exercise rollback paths.
type FakeBoardStore struct {
	Apps   map[string]application.Application
	FailOn map[string]error
}

// NewFakeBoardStore creates an empty fake store.
func NewFakeBoardStore() *FakeBoardStore {
	return &FakeBoardStore{
		Apps:   make(map[string]application.Application),
		FailOn: make(map[string]error),
	}
}

// Seed places an application directly into the store, bypassing positioning.
func (s *FakeBoardStore) Seed(app application.Application) {
	s.Apps[app.ID] = app
}

// Snapshot returns a copy of the current state for before/after comparisons.
func (s *FakeBoardStore) Snapshot() map[string]application.Application {
	return cloneApps(s.Apps)
}

// InTx implements repository.BoardStore.
func (s *FakeBoardStore) InTx(_ context.Context, fn func(tx repository.BoardTx) error) error {
	work := &fakeBoardTx{apps: cloneApps(s.Apps), failOn: s.FailOn}
	if err := fn(work); err != nil {
		return err
	}
	s.Apps = work.apps
	return nil
}

func cloneApps(apps map[string]application.Application) map[string]application.Application {
	clone := make(map[string]application.Application, len(apps))
	for id, app := range apps {
		clone[id] = app
	}
	return clone
}

type fakeBoardTx struct {
	apps   map[string]application.Application
	failOn map[string]error
}

func (t *fakeBoardTx) fail(op string) error {
	return t.failOn[op]
}

func (t *fakeBoardTx) Get(_ context.Context, ownerID, id string) (*application.Application, error) {
	if err := t.fail("Get"); err != nil {
		return nil, err
	}
	app, ok := t.apps[id]
	if !ok || app.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := app
	return &copied, nil
}

func (t *fakeBoardTx) CountPartition(_ context.Context, ownerID string, status application.Status) (int, error) {
	if err := t.fail("CountPartition"); err != nil {
		return 0, err
	}
	count := 0
	for _, app := range t.apps {
		if app.OwnerID == ownerID && app.Status == status {
			count++
		}
	}
	return count, nil
}

func (t *fakeBoardTx) ShiftRange(_ context.Context, ownerID string, status application.Status, from int, to *int, delta int) error {
	if err := t.fail("ShiftRange"); err != nil {
		return err
	}
	for id, app := range t.apps {
		if app.OwnerID != ownerID || app.Status != status {
			continue
		}
		if app.Position < from {
			continue
		}
		if to != nil && app.Position > *to {
			continue
		}
		app.Position += delta
		t.apps[id] = app
	}
	return nil
}

func (t *fakeBoardTx) Place(_ context.Context, ownerID, id string, status application.Status, position int) error {
	if err := t.fail("Place"); err != nil {
		return err
	}
	app, ok := t.apps[id]
	if !ok || app.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	app.Status = status
	app.Position = position
	t.apps[id] = app
	return nil
}

func (t *fakeBoardTx) Insert(_ context.Context, app *application.Application) error {
	if err := t.fail("Insert"); err != nil {
		return err
	}
	t.apps[app.ID] = *app
	return nil
}

func (t *fakeBoardTx) Delete(_ context.Context, ownerID, id string) error {
	if err := t.fail("Delete"); err != nil {
		return err
	}
	app, ok := t.apps[id]
	if !ok || app.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(t.apps, id)
	return nil
}
