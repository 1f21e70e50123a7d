package implementation

import (
	"context"
	"encoding/json"

	"github.com/af-Athameem/gtruth/internal/entity"
	"github.com/af-Athameem/gtruth/internal/pkg/logger"
	"github.com/af-Athameem/gtruth/internal/repository/contract"
	"github.com/af-Athameem/gtruth/pkg/blobstore"
)

const usersObject = "users.json"

type userRepository struct {
	store blobstore.Store
	log   logger.ILogger
}

func NewUserRepository(store blobstore.Store, log logger.ILogger) contract.IUserRepository {
	return &userRepository{store: store, log: log}
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) *entity.Credential {
	var raw map[string]json.RawMessage
	if err := r.store.ReadJSON(ctx, usersObject, &raw); err != nil {
		r.log.Warn("user_repository", "failed to read credential store", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	// The store is expected to be {"users": {...}}; a bare map of users is
	// accepted as-is (legacy layout).
	users := map[string]entity.Credential{}
	if nested, ok := raw["users"]; ok {
		if err := json.Unmarshal(nested, &users); err != nil {
			return nil
		}
	} else {
		for name, data := range raw {
			var cred entity.Credential
			if err := json.Unmarshal(data, &cred); err != nil {
				continue
			}
			users[name] = cred
		}
	}

	cred, ok := users[username]
	if !ok || cred.PasswordHash == "" {
		return nil
	}
	return &cred
}
