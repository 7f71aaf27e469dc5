package sim

import (
	"fmt"
	"math/rand/v2"
)

// ModelReloader swaps in a new main model. It must leave the current model
// in place when it returns an error.
type ModelReloader interface {
	ReloadModel(src ModelSource) error
}

// ResourceError reports a commit that could not load the staged model.
type ResourceError struct {
	Model ModelSource
	Err   error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("reload model %s (%s): %v", e.Model.Path, e.Model.Format, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Store holds the live and staged simulation state.
type Store struct {
	live   Parameters
	staged Parameters

	liveModel   ModelSource
	stagedModel ModelSource

	rng *rand.Rand
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the random source used by Reseed.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// NewStore creates a store whose live and staged copies both equal the initial values.
func NewStore(params Parameters, model ModelSource, opts ...Option) *Store {
	s := &Store{
		live:        params,
		staged:      params,
		liveModel:   model,
		stagedModel: model,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Live returns a copy of the parameters currently driving rendering.
func (s *Store) Live() Parameters { return s.live }

// Staged returns the editable parameters.
func (s *Store) Staged() *Parameters { return &s.staged }

// LiveModel returns the model currently on screen.
func (s *Store) LiveModel() ModelSource { return s.liveModel }

// StagedModel returns the editable model source.
func (s *Store) StagedModel() *ModelSource { return &s.stagedModel }

// ModelChanged reports whether a commit would reload the model.
func (s *Store) ModelChanged() bool { return s.stagedModel != s.liveModel }

// Commit makes the staged values live. When the staged model differs from
// the live one, r loads it first; if that fails nothing changes.
// Numeric fields are not validated.
func (s *Store) Commit(r ModelReloader) error {
	if s.ModelChanged() {
		if r == nil {
			return &ResourceError{Model: s.stagedModel, Err: fmt.Errorf("no model reloader")}
		}
		if err := r.ReloadModel(s.stagedModel); err != nil {
			return &ResourceError{Model: s.stagedModel, Err: err}
		}
		s.liveModel = s.stagedModel
	}
	s.live = s.staged
	return nil
}

// Reseed draws a new staged seed in [0, 100) and commits.
func (s *Store) Reseed(r ModelReloader) error {
	s.staged.Seed = s.rng.Float32() * 100
	return s.Commit(r)
}
