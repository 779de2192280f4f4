package repository

import (
	"context"

	"parkify/internal/models"
	"parkify/internal/store"
)

// SessionRepository keeps one current-user record per login under parkifyUser:<id>.
type SessionRepository struct {
	kv store.KV
}

func NewSessionRepository(kv store.KV) *SessionRepository {
	return &SessionRepository{kv: kv}
}

func (r *SessionRepository) Save(ctx context.Context, s models.Session) error {
	return store.SaveJSON(ctx, r.kv, store.SessionKey(s.ID), s)
}

// GetByID returns nil when the session does not exist.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	found, err := store.LoadJSON(ctx, r.kv, store.SessionKey(id), &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.kv.Delete(ctx, store.SessionKey(id))
}
