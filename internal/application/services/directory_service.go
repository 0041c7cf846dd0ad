package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	"github.com/zatekoja/bookingdemo/internal/domain/providers"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
)

const (
	providerBatchSize  = 50
	providerBatchPause = 100 * time.Millisecond
)

// DirectoryService walks the vendor's provider directory. The provider
// detail endpoint accepts at most 50 NPIs per call, so the full listing
// is fetched in sequential batches with a short pause between calls to
// stay inside the sandbox rate limits.
type DirectoryService struct {
	directory  providers.BookingDirectory
	batchSize  int
	batchPause time.Duration
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(directory providers.BookingDirectory) *DirectoryService {
	return &DirectoryService{
		directory:  directory,
		batchSize:  providerBatchSize,
		batchPause: providerBatchPause,
	}
}

// ListNPIs returns one page of the vendor's NPI directory
func (s *DirectoryService) ListNPIs(ctx context.Context, page, pageSize int) (*entities.NPIPage, error) {
	return s.directory.ListNPIs(ctx, page, pageSize)
}

// ListAllProviders fetches the complete provider directory: every NPI,
// then full records batch by batch. A failed batch aborts the walk.
func (s *DirectoryService) ListAllProviders(ctx context.Context, insurancePlanID string) ([]entities.ProviderGroup, error) {
	ctx, span := observability.StartSpan(ctx, "DirectoryService.ListAllProviders")
	defer span.End()

	npiPage, err := s.directory.ListNPIs(ctx, 0, 0)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	npis := npiPage.NPIs
	groups := make([]entities.ProviderGroup, 0, len(npis))
	for start := 0; start < len(npis); start += s.batchSize {
		end := start + s.batchSize
		if end > len(npis) {
			end = len(npis)
		}

		batch, err := s.directory.GetProviders(ctx, npis[start:end], insurancePlanID)
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		groups = append(groups, batch...)

		if end < len(npis) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.batchPause):
			}
		}
	}

	log.Debug().
		Int("npi_count", len(npis)).
		Int("group_count", len(groups)).
		Msg("provider directory walk finished")
	return groups, nil
}
