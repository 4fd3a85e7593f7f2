package server

import (
	"collabdocs/internal/config"
	"collabdocs/internal/http/handlers/docs"
	"collabdocs/internal/http/handlers/session"
	"collabdocs/internal/http/handlers/user"
	"collabdocs/internal/http/middleware"
	"collabdocs/internal/models"
	utils "collabdocs/internal/utils/http_errors"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Services struct {
	Auth       AuthService
	Docs       DocService
	DocList    DocListService
	Permission PermissionService
	EditLock   EditLockService
	Sessions   SessionStorer
}

func StartServer(
	ctx context.Context,
	cfg *config.HTTPServer,
	log *slog.Logger,
	services Services,
) error {
	r := mux.NewRouter()

	r.Use(middleware.Logger(log))

	setupRoutes(r, log, services)

	srv := &http.Server{
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
		Handler:      r,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()
	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func setupRoutes(r *mux.Router, log *slog.Logger, services Services) {
	// POST user
	r.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user.Add(ctx, log, w, r, services.Auth)
	}).Methods(http.MethodPost)

	// POST session
	r.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Add(ctx, log, w, r, services.Auth)
	}).Methods(http.MethodPost)

	// DELETE session
	r.HandleFunc("/api/auth/{token}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		token := vars["token"]
		session.Delete(ctx, log, w, r, token, services.Auth)
	}).Methods(http.MethodDelete)

	// Read routes carry a fresh request scope and resolve the requester
	// when a token is present; docs open to anyone need no session.
	public := r.NewRoute().Subrouter()
	public.Use(middleware.Scope(), middleware.MaybeAuth(log, services.Sessions))

	// GET docs
	public.HandleFunc("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.List(ctx, log, w, r, services.DocList, models.RequestContext{})
	}).Methods(http.MethodGet)

	// GET docs scoped to a group
	public.HandleFunc("/api/groups/{gid}/docs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.List(ctx, log, w, r, services.DocList, models.RequestContext{
			CurrentGroupID: vars["gid"],
		})
	}).Methods(http.MethodGet)

	// GET docs started or edited by a user
	public.HandleFunc("/api/users/{uid}/docs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.List(ctx, log, w, r, services.DocList, models.RequestContext{
			ViewedUserID: vars["uid"],
			View:         models.ViewStartedBy,
		})
	}).Methods(http.MethodGet)

	// GET doc by id
	public.HandleFunc("/api/docs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.GetByID(ctx, log, w, r, vars["id"], services.Docs, services.Permission, services.EditLock)
	}).Methods(http.MethodGet)

	// GET doc settings
	public.HandleFunc("/api/docs/{id}/settings", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.GetSettings(ctx, log, w, r, vars["id"], services.Permission)
	}).Methods(http.MethodGet)

	// GET doc lock state
	public.HandleFunc("/api/docs/{id}/lock", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.GetLock(ctx, log, w, r, vars["id"], services.EditLock)
	}).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.Scope(), middleware.Auth(log, services.Sessions))

	// POST doc
	protected.HandleFunc("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Create(ctx, log, w, r, services.Docs)
	}).Methods(http.MethodPost)

	// DELETE doc by id
	protected.HandleFunc("/api/docs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.Delete(ctx, log, w, r, vars["id"], services.Docs)
	}).Methods(http.MethodDelete)

	// PUT doc settings
	protected.HandleFunc("/api/docs/{id}/settings", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.UpdateSettings(ctx, log, w, r, vars["id"], services.Permission)
	}).Methods(http.MethodPut)

	// POST begin edit
	protected.HandleFunc("/api/docs/{id}/edit", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.BeginEdit(ctx, log, w, r, vars["id"], services.Docs)
	}).Methods(http.MethodPost)

	// PUT finish edit
	protected.HandleFunc("/api/docs/{id}/edit", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.FinishEdit(ctx, log, w, r, vars["id"], services.Docs)
	}).Methods(http.MethodPut)

	// DELETE abandon own edit
	protected.HandleFunc("/api/docs/{id}/edit", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.AbandonEdit(ctx, log, w, r, vars["id"], services.EditLock)
	}).Methods(http.MethodDelete)

	// DELETE force-cancel someone's edit lock
	protected.HandleFunc("/api/docs/{id}/lock", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.CancelLock(ctx, log, w, r, vars["id"], services.EditLock)
	}).Methods(http.MethodDelete)

	// Not allowed
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	})
}
