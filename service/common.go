package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"yatube/app/config"
	"yatube/app/media"
	"yatube/app/repositories"
	"yatube/app/repositories/gormstore"

	"github.com/dgraph-io/badger/v4"
)

var osExit = os.Exit

// confirm asks a yes/no question and reads the answer from stdin.
func confirm(question string) bool {
	fmt.Print(question + " [y/N] ")
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

// backend is the opened storage and media pair selected by the config.
type backend struct {
	store *repositories.Store
	media media.Store
}

func (b *backend) Close() error {
	return b.store.Close()
}

// openBackend opens the store and the media store named in cfg.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	var (
		store    *repositories.Store
		badgerDB *badger.DB
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := gormstore.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := gormstore.Migrate(db); err != nil {
			return nil, err
		}
		store = gormstore.NewStore(db)
	case config.StorageBadger:
		db, err := repositories.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		badgerDB = db
		store = repositories.NewBadgerStore(db)
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	b := &backend{store: store}
	switch cfg.Media {
	case config.MediaS3:
		s3Store, err := media.NewS3Store(ctx, media.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			return nil, errors.Join(err, store.Close())
		}
		b.media = s3Store
	case config.MediaBadger:
		if badgerDB == nil {
			return nil, errors.Join(errors.New("badger media requires badger storage"), store.Close())
		}
		b.media = media.NewBadgerStore(badgerDB)
	default:
		return nil, errors.Join(fmt.Errorf("unknown media backend %q", cfg.Media), store.Close())
	}
	return b, nil
}
