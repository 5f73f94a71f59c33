package tokenstore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jrsteele09/restaurant-panel/internal/config"
	"github.com/redis/go-redis/v9"
)

// Slot names a stored credential.
type Slot string

const (
	AccessSlot  Slot = "accessToken"
	RefreshSlot Slot = "refreshToken"
)

var allSlots = []Slot{AccessSlot, RefreshSlot}

// Store keeps credentials across process restarts.
// Get never fails: backend errors are logged and read as an absent credential.
// Setting an empty token clears the slot. Clear removes every slot and is
// not an error when nothing is stored.
type Store interface {
	Get(ctx context.Context, slot Slot) (string, bool)
	Set(ctx context.Context, slot Slot, token string) error
	Clear(ctx context.Context) error
}

// New returns the backend named by the session config.
func New(cfg interface {
	config.SessionConfig
	config.EnvConfig
}) (Store, error) {
	switch cfg.GetTokenStore() {
	case config.TokenStoreMemory:
		return NewMemoryStore(), nil
	case config.TokenStoreFile:
		return NewFileStore(filepath.Join(cfg.GetDataFolder(), "session.json")), nil
	case config.TokenStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.GetRedisPassword(),
		})
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.GetTokenStore())
	}
}
