package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/glosso/glosso/internal/session"
	"github.com/glosso/glosso/pkg/catalog"
	"github.com/glosso/glosso/pkg/logger"
)

// exportTimeout bounds one re-export run.
const exportTimeout = 30 * time.Second

// exportWorker re-exports per-language files after saves. Triggers are
// collapsed through a small buffered channel: a save while the buffer is
// full rides on an export that is already queued.
type exportWorker struct {
	sess   *session.Session
	dir    string
	format catalog.Format
	log    *slog.Logger

	jobs chan struct{}
	done chan struct{}
}

func newExportWorker(sess *session.Session, dir string, format catalog.Format) *exportWorker {
	return &exportWorker{
		sess:   sess,
		dir:    dir,
		format: format,
		log:    logger.Discard(),
		jobs:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (w *exportWorker) start(log *slog.Logger) {
	if log != nil {
		w.log = log
	}
	go w.loop()
}

func (w *exportWorker) loop() {
	defer close(w.done)
	for range w.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		err := w.sess.WriteLanguageFiles(ctx, w.dir, w.format)
		cancel()
		if err != nil {
			w.log.Error("export after save failed",
				slog.String("dir", w.dir),
				slog.Any("error", err),
			)
			continue
		}
		w.log.Info("language files exported", slog.String("dir", w.dir))
	}
}

// trigger queues a re-export without blocking the caller.
func (w *exportWorker) trigger() {
	select {
	case w.jobs <- struct{}{}:
	default:
	}
}

// stop drains queued exports and waits for the loop to exit.
func (w *exportWorker) stop() {
	close(w.jobs)
	<-w.done
}
