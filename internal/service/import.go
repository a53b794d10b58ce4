package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/config"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/store"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/watcher"
)

// maxImportFileSize caps photos picked up from the drop folder. Larger
// files are skipped with a warning rather than decoded.
const maxImportFileSize = 25 << 20

// importExtensions are the photo formats accepted from the drop folder.
var importExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImportService watches a drop folder and turns photos placed there into
// closet items for the root user. Photos dropped over SMB or scp finish
// writing before the watcher reports them, so each file is imported once,
// whole.
type ImportService struct {
	store  *store.Store
	closet *ClosetService
	config *config.Config
	log    *logger.Logger

	watcher *watcher.Watcher
}

// NewImportService creates a new import service.
func NewImportService(store *store.Store, closetService *ClosetService, cfg *config.Config, log *logger.Logger) *ImportService {
	return &ImportService{
		store:  store,
		closet: closetService,
		config: cfg,
		log:    log,
	}
}

// Start begins watching the import folder. It blocks until ctx is
// canceled. When imports are disabled it returns immediately.
func (s *ImportService) Start(ctx context.Context) error {
	if !s.config.Import.Enabled || s.config.Import.Path == "" {
		return nil
	}

	if err := os.MkdirAll(s.config.Import.Path, 0o755); err != nil {
		return fmt.Errorf("create import folder: %w", err)
	}

	w, err := watcher.New(s.log.Logger, watcher.Options{})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	s.watcher = w

	if err := w.Watch(s.config.Import.Path); err != nil {
		return fmt.Errorf("watch import folder: %w", err)
	}

	s.log.Info("import folder watcher started", "path", s.config.Import.Path)

	go s.consume(ctx)
	return w.Start(ctx)
}

// Stop shuts the watcher down.
func (s *ImportService) Stop() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Stop()
}

// consume drains watcher events until the channel closes.
func (s *ImportService) consume(ctx context.Context) {
	for {
		select {
		case event, ok := <-s.watcher.Events():
			if !ok {
				return
			}
			if event.Type != watcher.EventAdded {
				continue
			}
			if err := s.importFile(ctx, event.Path); err != nil {
				s.log.WithError(err).Warn("import failed", "path", event.Path)
			}
		case err, ok := <-s.watcher.Errors():
			if !ok {
				return
			}
			s.log.WithError(err).Warn("import watcher error")
		case <-ctx.Done():
			return
		}
	}
}

// importFile reads one dropped photo and adds it to the root user's
// closet. The file is removed afterwards so the folder stays an inbox,
// not an archive.
func (s *ImportService) importFile(ctx context.Context, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !importExtensions[ext] {
		s.log.Debug("skipping non-photo file", "path", path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxImportFileSize {
		return fmt.Errorf("%s exceeds import size limit", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rootUser, err := s.rootUser(ctx)
	if err != nil {
		return err
	}

	draft := domain.ClothingItem{
		Name:        itemNameFromFile(path),
		Category:    domain.CategoryOther,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Notes:       "Imported from drop folder",
	}

	item, err := s.closet.AddItem(ctx, rootUser.ID, draft)
	if err != nil {
		return fmt.Errorf("add imported item: %w", err)
	}

	if err := os.Remove(path); err != nil {
		s.log.WithError(err).Warn("failed to remove imported file", "path", path)
	}

	s.log.Info("photo imported",
		"path", path,
		"item_id", item.ID,
		"user_id", rootUser.ID,
	)
	return nil
}

// rootUser finds the server's root user. Imports have no authenticated
// requester, so dropped photos always land in the root closet.
func (s *ImportService) rootUser(ctx context.Context) (*domain.User, error) {
	for user, err := range s.store.Users.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		if user.IsRoot {
			return user, nil
		}
	}
	return nil, errors.New("no root user configured")
}

// itemNameFromFile derives a presentable item name from a filename:
// "blue_denim-jacket.jpg" becomes "Blue Denim Jacket".
func itemNameFromFile(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Imported item"
	}

	words := strings.Fields(base)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
