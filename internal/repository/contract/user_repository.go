package contract

import (
	"context"

	"github.com/af-Athameem/gtruth/internal/entity"
)

type IUserRepository interface {
	// FindByUsername returns nil when the user does not exist or the
	// credential store cannot be read.
	FindByUsername(ctx context.Context, username string) *entity.Credential
}
