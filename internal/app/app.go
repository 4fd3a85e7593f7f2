package app

import (
	"collabdocs/internal/access"
	"collabdocs/internal/cache/redis"
	"collabdocs/internal/config"
	"collabdocs/internal/dbs/postgres"
	"collabdocs/internal/models"
	"collabdocs/internal/query"
	cachesessionrepo "collabdocs/internal/repositories/cache/session"
	cachesettingsrepo "collabdocs/internal/repositories/cache/settings"
	docrepo "collabdocs/internal/repositories/db/doc"
	grouprepo "collabdocs/internal/repositories/db/group"
	userrepo "collabdocs/internal/repositories/db/user"
	authservice "collabdocs/internal/services/auth"
	docservice "collabdocs/internal/services/doc"
	doclistservice "collabdocs/internal/services/doclist"
	editlockservice "collabdocs/internal/services/editlock"
	permissionservice "collabdocs/internal/services/permission"
	userservice "collabdocs/internal/services/user"
	"context"
	"fmt"
	"log/slog"
)

type App struct {
	AuthService       AuthService
	UserService       UserService
	DocService        DocService
	DocListService    DocListService
	PermissionService PermissionService
	EditLockService   EditLockService
	SessionStorer     SessionStorer
}

func NewApp(ctx context.Context, log *slog.Logger, dbCfg config.DB, cacheConfig config.Cache, engineCfg config.Engine, adminToken string) (*App, error) {
	db, err := postgres.New(ctx, postgres.Config{
		Addr:     dbCfg.Addr,
		Port:     dbCfg.Port,
		User:     dbCfg.User,
		Password: dbCfg.Password,
		DB:       dbCfg.DB})
	if err != nil {
		log.Error("failed connect to db", "err", err)
		return nil, fmt.Errorf("failed connect to db: %w", err)
	}

	cache, err := redis.New(ctx, redis.Config{Addr: cacheConfig.Addr, Password: cacheConfig.Password, DB: cacheConfig.DB})
	if err != nil {
		log.Error("failed connect to cache", "err", err)
		return nil, fmt.Errorf("failed connect to cache: %w", err)
	}

	userRepo := userrepo.NewRepository(db)

	sessionCacheRepo := cachesessionrepo.New(cache, cacheConfig.SessionTTL)

	settingsCacheRepo := cachesettingsrepo.New(cache, cacheConfig.SettingsTTL)

	userService := userservice.New(log, userRepo, userRepo)

	authService := authservice.New(log, userService, userService, sessionCacheRepo, adminToken)

	docRepo := docrepo.NewRepository(db)

	groupRepo := grouprepo.NewRepository(db)

	policy := access.DefaultPolicy()
	policy.GroupMembersOpenWhenPublic = engineCfg.GroupMembersOpenWhenPublic

	permissionService := permissionservice.New(log, docRepo, docRepo, groupRepo, userRepo, settingsCacheRepo, policy)

	editLockService := editlockservice.New(log, docRepo, permissionService, engineCfg.LockWindow)

	resolver := query.NewResolver(defaultOrderBy(engineCfg), defaultPageSize(engineCfg))

	docListService := doclistservice.New(log, resolver, docRepo)

	docService := docservice.New(log, docRepo, docRepo, permissionService, editLockService, settingsCacheRepo)

	return &App{
		AuthService:       authService,
		UserService:       userService,
		DocService:        docService,
		DocListService:    docListService,
		PermissionService: permissionService,
		EditLockService:   editLockService,
		SessionStorer:     authService,
	}, nil
}

func defaultOrderBy(cfg config.Engine) func() models.OrderBy {
	orderBy, ok := models.ParseOrderBy(cfg.DefaultOrderBy)
	if !ok {
		return nil
	}
	return func() models.OrderBy { return orderBy }
}

func defaultPageSize(cfg config.Engine) func() int {
	if cfg.DefaultPageSize <= 0 {
		return nil
	}
	return func() int { return cfg.DefaultPageSize }
}
