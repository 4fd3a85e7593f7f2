package cachesettingsrepo

import (
	"context"
	cacherepo "collabdocs/internal/repositories/cache"
	"time"
)

type repository struct {
	cache       cacherepo.Cache
	settingsTTL time.Duration
}

func New(cache cacherepo.Cache, settingsTTL time.Duration) *repository {
	return &repository{
		cache:       cache,
		settingsTTL: settingsTTL,
	}
}

func (r *repository) Get(ctx context.Context, key string) (string, error) {
	settingsJSON, err := r.cache.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}

	return settingsJSON, nil
}

func (r *repository) Set(ctx context.Context, key string, value interface{}) error {
	return r.cache.Set(ctx, key, value, r.settingsTTL).Err()
}

func (r *repository) Del(ctx context.Context, keys ...string) error {
	return r.cache.Del(ctx, keys...).Err()
}
