package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"finlear/domain"
)

// LearningStateVersion is the shape of domain.LearningState written by Save.
const LearningStateVersion = 1

// StateStore is the narrow read/write interface over a user's learning state.
type StateStore interface {
	Load(ctx context.Context, userID string) (domain.LearningState, bool, error)
	Save(ctx context.Context, userID string, state domain.LearningState) error
	Delete(ctx context.Context, userID string) error
}

// CacheStateStore keeps learning state as JSON documents in a CacheRepository.
type CacheStateStore struct {
	cache CacheRepository
}

func NewCacheStateStore(cache CacheRepository) *CacheStateStore {
	return &CacheStateStore{cache: cache}
}

func stateKey(userID string) string {
	return "learning:" + userID
}

func (s *CacheStateStore) Load(ctx context.Context, userID string) (domain.LearningState, bool, error) {
	raw, ok, err := s.cache.Get(ctx, stateKey(userID))
	if err != nil {
		return domain.LearningState{}, false, fmt.Errorf("load learning state: %w", err)
	}
	if !ok {
		return domain.LearningState{}, false, nil
	}

	var state domain.LearningState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.LearningState{}, false, fmt.Errorf("decode learning state: %w", err)
	}
	if err := migrateState(&state); err != nil {
		return domain.LearningState{}, false, err
	}
	return state, true, nil
}

func (s *CacheStateStore) Save(ctx context.Context, userID string, state domain.LearningState) error {
	state.Version = LearningStateVersion
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode learning state: %w", err)
	}
	if err := s.cache.Set(ctx, stateKey(userID), string(raw), 0); err != nil {
		return fmt.Errorf("save learning state: %w", err)
	}
	return nil
}

func (s *CacheStateStore) Delete(ctx context.Context, userID string) error {
	if err := s.cache.Delete(ctx, stateKey(userID)); err != nil {
		return fmt.Errorf("delete learning state: %w", err)
	}
	return nil
}

// migrateState upgrades documents written by older versions in place.
func migrateState(state *domain.LearningState) error {
	switch {
	case state.Version > LearningStateVersion:
		return fmt.Errorf("learning state version %d is newer than supported %d", state.Version, LearningStateVersion)
	case state.Version == 0:
		// Unversioned documents predate the progress block being mandatory.
		if state.Answers == nil {
			state.Answers = map[string]string{}
		}
		if state.Progress.CompletedChapters == nil {
			state.Progress.CompletedChapters = []string{}
		}
		if state.Progress.ModuleProgress == nil {
			state.Progress.ModuleProgress = map[string]int{}
		}
		if state.Progress.Level == "" {
			state.Progress.Level = "Not Started"
		}
		state.Version = 1
	}
	return nil
}
