package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/glosso/glosso/pkg/logger"
	"github.com/glosso/glosso/pkg/store"
)

// backupTimeout bounds one backup run.
const backupTimeout = time.Minute

// backupTimestamp formats sortable UTC timestamps for backup filenames.
const backupTimestamp = "20060102T150405Z"

// backupJob periodically copies the persisted catalog document into a
// timestamped file and prunes old copies.
type backupJob struct {
	st      store.Store
	project string
	dir     string
	keep    int
	log     *slog.Logger
	cron    *cron.Cron
}

func newBackupJob(schedule string, st store.Store, project, dir string, keep int) (*backupJob, error) {
	if st == nil {
		return nil, errors.New("server: backup store cannot be nil")
	}
	if project == "" {
		return nil, errors.New("server: backup project cannot be empty")
	}
	if dir == "" {
		return nil, errors.New("server: backup dir cannot be empty")
	}
	job := &backupJob{
		st:      st,
		project: project,
		dir:     dir,
		keep:    keep,
		log:     logger.Discard(),
		cron:    cron.New(),
	}
	if _, err := job.cron.AddFunc(schedule, job.tick); err != nil {
		return nil, fmt.Errorf("server: bad backup schedule: %w", err)
	}
	return job, nil
}

func (b *backupJob) start(log *slog.Logger) {
	if log != nil {
		b.log = log
	}
	b.cron.Start()
}

func (b *backupJob) stop() {
	<-b.cron.Stop().Done()
}

func (b *backupJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()
	if err := b.run(ctx); err != nil {
		b.log.Error("catalog backup failed",
			slog.String("project", b.project),
			slog.Any("error", err),
		)
	}
}

// run writes one backup of the persisted document. The working copy is
// deliberately not consulted: backups capture what a reload would see.
func (b *backupJob) run(ctx context.Context) error {
	cat, err := b.st.Load(ctx, b.project)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%s.json", b.project, time.Now().UTC().Format(backupTimestamp))
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, cat.Encode(), 0o644); err != nil {
		return err
	}
	b.log.Info("catalog backed up",
		slog.String("project", b.project),
		slog.String("file", path),
	)
	return b.prune()
}

// prune removes the oldest backups beyond the keep limit. The timestamp
// format sorts lexically, so name order is age order.
func (b *backupJob) prune() error {
	if b.keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return err
	}
	var names []string
	prefix := b.project + "-"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= b.keep {
		return nil
	}
	slices.Sort(names)
	var errs []error
	for _, name := range names[:len(names)-b.keep] {
		if err := os.Remove(filepath.Join(b.dir, name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
