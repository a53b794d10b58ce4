package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/config"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/media/images"
)

// ImageStorages groups the item photo storage services.
type ImageStorages struct {
	Photos     *images.Storage
	Thumbnails *images.Storage
}

// ProvideImageStorages provides the item photo storages.
func ProvideImageStorages(i do.Injector) (*ImageStorages, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	photos, err := images.NewStorageWithSubdir(cfg.Data.BasePath, "photos")
	if err != nil {
		return nil, fmt.Errorf("photo storage: %w", err)
	}

	thumbs, err := images.NewStorageWithSubdir(cfg.Data.BasePath, "thumbnails")
	if err != nil {
		return nil, fmt.Errorf("thumbnail storage: %w", err)
	}

	log.Info("Image storages initialized")

	return &ImageStorages{
		Photos:     photos,
		Thumbnails: thumbs,
	}, nil
}

// ProvideImageProcessor provides the item photo processor.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	storages := do.MustInvoke[*ImageStorages](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewProcessor(storages.Photos, storages.Thumbnails, log.Logger), nil
}
