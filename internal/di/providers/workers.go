package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/config"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
)

// ImportServiceHandle wraps the drop-folder import watcher with shutdown
// capability.
type ImportServiceHandle struct {
	*service.ImportService
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ImportServiceHandle) Shutdown() error {
	h.cancel()
	return h.Stop()
}

// ProvideImportService provides the photo drop-folder import watcher.
func ProvideImportService(i do.Injector) (*ImportServiceHandle, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	closetService := do.MustInvoke[*service.ClosetService](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewImportService(storeHandle.Store, closetService, cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := svc.Start(ctx); err != nil {
			log.Error("Import watcher error", "error", err)
		}
	}()

	if cfg.Import.Enabled {
		log.Info("Import watcher started", "path", cfg.Import.Path)
	}

	return &ImportServiceHandle{
		ImportService: svc,
		cancel:        cancel,
	}, nil
}

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// Initial cleanup on startup
		if count, err := sessionService.DeleteExpiredSessions(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		} else if count > 0 {
			log.Info("Initial session cleanup completed", "deleted", count)
		}

		for {
			select {
			case <-ticker.C:
				if count, err := sessionService.DeleteExpiredSessions(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				} else if count > 0 {
					log.Info("Session cleanup completed", "deleted", count)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started")

	return &SessionCleanupJob{cancel: cancel}, nil
}
