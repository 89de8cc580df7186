// Package screens holds the per-screen state of the main view: what each
// screen fetched, whether it is loading, and the actions it offers. Rendering
// is left to the caller.
package screens

import (
	"context"
	"sync"

	"zift.local/internal/domain"
)

// Navigator is the navigation surface screens act on. *nav.Controller
// satisfies it.
type Navigator interface {
	SelectJob(id string)
	SelectApplication(id string)
	OpenSettings()
	OpenEditProfile(u *domain.User)
	OpenAnalytics()
	OpenPrivacy()
	OpenTerms()
	GoToApplied()
	Back() bool
	Logout()
}

// ResourceState is a point-in-time copy of a Resource.
type ResourceState[T any] struct {
	Loading    bool
	Refreshing bool
	Loaded     bool
	Data       T
	Err        error
}

// Resource is one fetched value with its loading flags. Every successful
// fetch replaces Data, so repeated refreshes leave it unchanged when the
// server's answer is unchanged.
type Resource[T any] struct {
	fetch        func(context.Context) (T, error)
	isEmpty      func(T) bool
	resetOnError bool

	mu    sync.Mutex
	state ResourceState[T]
}

func NewResource[T any](fetch func(context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{fetch: fetch}
}

// NewListResource is a Resource whose empty state is an empty list.
func NewListResource[E any](fetch func(context.Context) ([]E, error)) *Resource[[]E] {
	r := NewResource(fetch)
	r.isEmpty = func(v []E) bool { return len(v) == 0 }
	return r
}

// ResetOnError makes a failed fetch clear Data instead of keeping the last
// good value.
func (r *Resource[T]) ResetOnError() *Resource[T] {
	r.resetOnError = true
	return r
}

func (r *Resource[T]) Load(ctx context.Context) error {
	return r.run(ctx, false)
}

// Refresh re-issues the fetch while keeping the current data visible.
func (r *Resource[T]) Refresh(ctx context.Context) error {
	return r.run(ctx, true)
}

func (r *Resource[T]) run(ctx context.Context, refreshing bool) error {
	r.mu.Lock()
	if refreshing {
		r.state.Refreshing = true
	} else {
		r.state.Loading = true
	}
	r.mu.Unlock()

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Loading = false
	r.state.Refreshing = false
	r.state.Err = err
	if err != nil {
		if r.resetOnError {
			var zero T
			r.state.Data = zero
		}
		return err
	}
	r.state.Data = data
	r.state.Loaded = true
	return nil
}

// Update applies a local change to Data, for optimistic edits after an action.
func (r *Resource[T]) Update(f func(T) T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Data = f(r.state.Data)
}

func (r *Resource[T]) State() ResourceState[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resource[T]) Data() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Data
}

func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Err
}

// Empty reports a finished fetch with nothing to show.
func (r *Resource[T]) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Loading || !r.state.Loaded {
		return false
	}
	if r.isEmpty == nil {
		return false
	}
	return r.isEmpty(r.state.Data)
}
