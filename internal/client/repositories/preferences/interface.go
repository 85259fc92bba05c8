package preferences

import (
	"context"
)

// Repository is a string key/value store. Get reports ("", false, nil) for
// an absent key; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
