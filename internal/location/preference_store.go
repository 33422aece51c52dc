package location

import (
	"context"

	"weigh-backend/internal/repositories"
)

const permissionDeniedKey = "location_permission_denied"

// RepositoryPreferenceStore persists the denial flag per worker through
// the settings repository so it survives across sessions.
type RepositoryPreferenceStore struct {
	repo     *repositories.SettingRepository
	workerID int
}

func NewRepositoryPreferenceStore(repo *repositories.SettingRepository, workerID int) *RepositoryPreferenceStore {
	return &RepositoryPreferenceStore{repo: repo, workerID: workerID}
}

func (s *RepositoryPreferenceStore) PermissionDenied(ctx context.Context) (bool, error) {
	value, err := s.repo.GetPreference(ctx, s.workerID, permissionDeniedKey)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (s *RepositoryPreferenceStore) SetPermissionDenied(ctx context.Context, denied bool) error {
	value := "false"
	if denied {
		value = "true"
	}
	return s.repo.SetPreference(ctx, s.workerID, permissionDeniedKey, value)
}
