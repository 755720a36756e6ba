package repositories

import (
	"context"
	"github.com/maxaizer/talent-jobs/internal/entities"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type userRepository interface {
	GetByID(ctx context.Context, ID string) (*entities.User, error)
}

type CachedUsers struct {
	repo  userRepository
	cache *gocache.Cache
}

func NewCachedUsers(repo userRepository) *CachedUsers {
	return &CachedUsers{repo: repo, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (c *CachedUsers) GetByID(ctx context.Context, ID string) (*entities.User, error) {
	if value, found := c.cache.Get(ID); found {
		user := value.(entities.User)
		return &user, nil
	}

	user, err := c.repo.GetByID(ctx, ID)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ID, *user, gocache.DefaultExpiration)
	return user, nil
}
