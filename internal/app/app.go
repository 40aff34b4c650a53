// Package app provides application-level wiring for the tenant directory
// API: repositories, upstream client, services, sync job and HTTP handler.
package app

import (
	"database/sql"
	"log/slog"
	"net/http"

	"tenant-api/internal/api"
	"tenant-api/internal/config"
	"tenant-api/internal/db/repository"
	"tenant-api/internal/graph"
	"tenant-api/internal/service"
	"tenant-api/internal/sync"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// App is the fully-wired application. Router serves HTTP; Sync is the cache
// refresh job, started and stopped by the caller.
type App struct {
	Router http.Handler
	Sync   *sync.Job
}

// New wires repositories, the upstream client, services, the sync job and
// the route tree from the provided deps.
func New(deps Deps) *App {
	cfg := deps.Cfg

	// Mutations and sync upserts go through the write pool; request-path
	// reads use the read pool.
	userWrites := repository.NewUserRepo(deps.WriteDB)
	groupWrites := repository.NewGroupRepo(deps.WriteDB)
	userReads := repository.NewUserRepo(deps.ReadDB)
	groupReads := repository.NewGroupRepo(deps.ReadDB)

	directory := graph.NewClient(cfg.Graph, nil, deps.Logger.With("component", "graph"))

	syncJob := sync.NewJob(directory, userWrites, groupWrites, cfg.SyncInterval,
		deps.Logger.With("component", "sync"))

	users := service.NewUserService(&splitUserRepo{UserRepo: userReads, writes: userWrites}, directory)
	groups := service.NewGroupService(&splitGroupRepo{GroupRepo: groupReads, writes: groupWrites}, directory)

	handler := api.NewHandler(users, groups, deps.ReadDB, syncJob,
		deps.Logger.With("component", "api"))

	return &App{
		Router: api.NewRouter(handler, cfg),
		Sync:   syncJob,
	}
}
