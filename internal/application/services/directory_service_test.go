package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/bookingdemo/internal/domain/entities"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

func npiList(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%010d", i)
	}
	return out
}

func TestListAllProviders(t *testing.T) {
	t.Run("fetches details in batches of fifty", func(t *testing.T) {
		npis := npiList(120)
		directory := new(MockBookingDirectory)
		directory.On("ListNPIs", mock.Anything, 0, 0).
			Return(&entities.NPIPage{NPIs: npis, TotalCount: len(npis)}, nil)

		var batchSizes []int
		directory.On("GetProviders", mock.Anything, mock.Anything, "").
			Run(func(args mock.Arguments) {
				batchSizes = append(batchSizes, len(args.Get(1).([]string)))
			}).
			Return([]entities.ProviderGroup{{NPI: "x"}}, nil)

		service := NewDirectoryService(directory)
		service.batchPause = time.Millisecond

		groups, err := service.ListAllProviders(context.Background(), "")

		assert.NoError(t, err)
		assert.Equal(t, []int{50, 50, 20}, batchSizes)
		assert.Len(t, groups, 3)
	})

	t.Run("a failed batch aborts the walk", func(t *testing.T) {
		directory := new(MockBookingDirectory)
		directory.On("ListNPIs", mock.Anything, 0, 0).
			Return(&entities.NPIPage{NPIs: npiList(60)}, nil)
		directory.On("GetProviders", mock.Anything, mock.Anything, "").
			Return([]entities.ProviderGroup{{NPI: "x"}}, nil).Once()
		directory.On("GetProviders", mock.Anything, mock.Anything, "").
			Return(nil, apperrors.NewTimeoutError("provider lookup")).Once()

		service := NewDirectoryService(directory)
		service.batchPause = time.Millisecond

		_, err := service.ListAllProviders(context.Background(), "")

		assert.Equal(t, apperrors.ErrorTypeTimeout, apperrors.AsAppError(err).Type)
	})

	t.Run("passes the insurance plan filter through", func(t *testing.T) {
		directory := new(MockBookingDirectory)
		directory.On("ListNPIs", mock.Anything, 0, 0).
			Return(&entities.NPIPage{NPIs: npiList(10)}, nil)
		directory.On("GetProviders", mock.Anything, mock.Anything, "plan-1").
			Return([]entities.ProviderGroup{}, nil)

		service := NewDirectoryService(directory)
		_, err := service.ListAllProviders(context.Background(), "plan-1")

		assert.NoError(t, err)
		directory.AssertExpectations(t)
	})

	t.Run("an empty directory makes no detail calls", func(t *testing.T) {
		directory := new(MockBookingDirectory)
		directory.On("ListNPIs", mock.Anything, 0, 0).
			Return(&entities.NPIPage{NPIs: nil}, nil)

		service := NewDirectoryService(directory)
		groups, err := service.ListAllProviders(context.Background(), "")

		assert.NoError(t, err)
		assert.Empty(t, groups)
		directory.AssertNotCalled(t, "GetProviders", mock.Anything, mock.Anything, mock.Anything)
	})
}
