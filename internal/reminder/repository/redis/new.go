package redis

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	goredis "github.com/redis/go-redis/v9"

	pkgLog "remindme/pkg/log"
)

// usersKey is the global set tracking every known user id.
const usersKey = "users"

// knownUsersCacheSize bounds the local cache that suppresses redundant
// registration round trips for already-known users.
const knownUsersCacheSize = 4096

type implRepository struct {
	l          pkgLog.Logger
	client     goredis.UniversalClient
	knownUsers *lru.Cache[string, struct{}]
}

// New creates a Redis-backed reminder repository.
func New(client goredis.UniversalClient, l pkgLog.Logger) (*implRepository, error) {
	cache, err := lru.New[string, struct{}](knownUsersCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build known-users cache: %w", err)
	}
	return &implRepository{
		l:          l,
		client:     client,
		knownUsers: cache,
	}, nil
}
