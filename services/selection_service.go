package services

import (
	"context"
	"errors"
	"time"

	"jmtec-reports/dal"
	"jmtec-reports/models"
	"jmtec-reports/utils"
	"jmtec-reports/utils/logger"
)

// ErrSelectionNotFound mirrors the store sentinel for callers that do
// not import dal.
var ErrSelectionNotFound = errors.New("selection not found")

// SelectionService issues one-shot handoff tokens: the list page stores
// the picked report number, the edit or print page claims it once.
type SelectionService struct {
	store  dal.SelectionStoreInterface
	config *models.Config
	logger logger.Logger
}

func NewSelectionService(store dal.SelectionStoreInterface, cfg *models.Config, log logger.Logger) *SelectionService {
	return &SelectionService{
		store:  store,
		config: cfg,
		logger: log,
	}
}

// StoreSelection records reportNumber and returns the claim token.
func (s *SelectionService) StoreSelection(ctx context.Context, reportNumber string) (string, error) {
	if reportNumber == "" {
		return "", errors.New("report number is required")
	}

	token := utils.GenerateUUID()
	ttl := s.config.SelectionTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	if err := s.store.Put(ctx, token, reportNumber, ttl); err != nil {
		s.logger.Errorf("Failed to store selection for %s: %v", reportNumber, err)
		return "", err
	}
	return token, nil
}

// ClaimSelection consumes the token and returns the report number it
// carried. A token can be claimed once.
func (s *SelectionService) ClaimSelection(ctx context.Context, token string) (string, error) {
	reportNumber, err := s.store.Take(ctx, token)
	if err != nil {
		if errors.Is(err, dal.ErrSelectionNotFound) {
			return "", ErrSelectionNotFound
		}
		return "", err
	}
	return reportNumber, nil
}
