package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/dbx"
	"github.com/dmitrijs2005/reformguide/internal/logging"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
	"github.com/dmitrijs2005/reformguide/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/reformguide/internal/server/storage"
)

type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type GarmentClassifier interface {
	Classify(ctx context.Context, image []byte) (string, error)
}

// ReformService turns an uploaded photo into a reform guide and records it
// in the user's activity log.
type ReformService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       BlobStore
	classifier  GarmentClassifier
	logger      logging.Logger
}

func NewReformService(db *sql.DB, m repomanager.RepositoryManager, store BlobStore, classifier GarmentClassifier, logger logging.Logger) *ReformService {
	return &ReformService{
		db:          db,
		repomanager: m,
		store:       store,
		classifier:  classifier,
		logger:      logger.With("module", "reform"),
	}
}

// CreateGuide stores the image, classifies it and records image, guide and
// log entry in one transaction. A blob written before a failed transaction
// is left in place.
func (s *ReformService) CreateGuide(ctx context.Context, userID int64, upload *models.Upload) (*models.Reform, error) {
	path, err := s.store.Put(ctx, storage.NewKey(upload.FileName), upload.ContentType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("error storing image: %w", err)
	}

	cloth, err := s.classifier.Classify(ctx, upload.Data)
	if err != nil {
		s.logger.Warn(ctx, "classification failed", "path", path, "error", err)
		return nil, fmt.Errorf("error classifying image: %w", err)
	}

	reform := &models.Reform{
		ReformType:  models.DefaultReformType,
		Cloth:       cloth,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Path:        path,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		image, err := s.repomanager.Images(tx).Create(ctx, &models.Image{
			UserID:      userID,
			FileName:    upload.FileName,
			ContentType: upload.ContentType,
			Path:        path,
		})
		if err != nil {
			return err
		}

		if _, err := s.repomanager.Reforms(tx).Create(ctx, reform); err != nil {
			return err
		}

		_, err = s.repomanager.Logs(tx).Create(ctx, &models.Log{
			UserID:  userID,
			ImageID: image.ID,
			GuideID: reform.ID,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error saving reform guide: %w", err)
	}

	s.logger.Info(ctx, "reform guide created", "user_id", userID, "guide_id", reform.ID, "cloth", cloth)
	return reform, nil
}
