// Package sync runs the periodic cache refresh against the upstream
// directory service.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"tenant-api/internal/domain"
)

// Job drains the upstream user and group collections into the local cache on
// a fixed interval. At most one pass runs at a time; a tick that fires while
// a pass is still in flight is skipped, not queued.
type Job struct {
	directory domain.DirectoryClient
	users     domain.UserRepository
	groups    domain.GroupRepository
	interval  time.Duration
	logger    *slog.Logger

	cron     *cron.Cron
	running  atomic.Bool
	lastSync atomic.Pointer[time.Time]
}

// NewJob creates a sync job. interval is the schedule period between passes.
func NewJob(directory domain.DirectoryClient, users domain.UserRepository, groups domain.GroupRepository, interval time.Duration, logger *slog.Logger) *Job {
	return &Job{
		directory: directory,
		users:     users,
		groups:    groups,
		interval:  interval,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the periodic pass and kicks off an immediate first pass in
// the background so the cache is warm before the first tick.
func (j *Job) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", j.interval)
	if _, err := j.cron.AddFunc(spec, func() { j.tick(context.Background()) }); err != nil {
		return fmt.Errorf("schedule sync: %w", err)
	}
	j.cron.Start()
	go j.tick(ctx)
	j.logger.Info("sync job started", "interval", j.interval)
	return nil
}

// Stop stops the scheduler. An in-flight pass is not interrupted.
func (j *Job) Stop() {
	j.cron.Stop()
	j.logger.Info("sync job stopped")
}

// LastSync returns the completion time of the most recent successful pass,
// or the zero time if none has completed yet.
func (j *Job) LastSync() time.Time {
	if t := j.lastSync.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

// tick is the scheduled entry point: single-flight, errors logged and
// swallowed so the schedule keeps going.
func (j *Job) tick(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("sync pass still running, skipping tick")
		return
	}
	defer j.running.Store(false)

	if err := j.runPass(ctx); err != nil {
		j.logger.Error("sync pass failed", "error", err)
	}
}

// RunOnce executes a single pass, honoring the same single-flight guard as
// the scheduler. It reports whether work was done and any pass error, which
// makes it usable from the CLI.
func (j *Job) RunOnce(ctx context.Context) error {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("sync pass still running, skipping")
		return nil
	}
	defer j.running.Store(false)

	return j.runPass(ctx)
}

// runPass drains the user and group collections concurrently. A failure in
// one collection does not stop the other; the first error is returned. The
// group uses no derived context on purpose: cancelling the sibling pass
// would turn one entity type's retry exhaustion into a total sync failure.
func (j *Job) runPass(ctx context.Context) error {
	start := time.Now()

	var g errgroup.Group
	var userCount, groupCount int
	g.Go(func() error {
		n, err := j.syncUsers(ctx)
		userCount = n
		return err
	})
	g.Go(func() error {
		n, err := j.syncGroups(ctx)
		groupCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := time.Now().UTC()
	j.lastSync.Store(&now)
	j.logger.Info("sync pass complete",
		"users", userCount, "groups", groupCount, "elapsed", time.Since(start))
	return nil
}

func (j *Job) syncUsers(ctx context.Context) (int, error) {
	pager := j.directory.ListUsers()
	total := 0
	for {
		users, more, err := pager.NextPage(ctx)
		if err != nil {
			return total, fmt.Errorf("list users: %w", err)
		}
		for i := range users {
			if err := j.users.Upsert(ctx, &users[i]); err != nil {
				return total, fmt.Errorf("upsert user %s: %w", users[i].ID, err)
			}
			total++
		}
		if !more {
			return total, nil
		}
	}
}

func (j *Job) syncGroups(ctx context.Context) (int, error) {
	pager := j.directory.ListGroups()
	total := 0
	for {
		groups, more, err := pager.NextPage(ctx)
		if err != nil {
			return total, fmt.Errorf("list groups: %w", err)
		}
		for i := range groups {
			if err := j.groups.Upsert(ctx, &groups[i]); err != nil {
				return total, fmt.Errorf("upsert group %s: %w", groups[i].ID, err)
			}
			total++
		}
		if !more {
			return total, nil
		}
	}
}
