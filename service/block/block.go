package block

import (
	"context"
	"time"

	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/internal/bitflow"
)

type service struct {
	config *core.Config
}

// New new block service
func New(config *core.Config) core.IBlockService {
	return &service{
		config: config,
	}
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	return bitflow.CurrentBlock(ctx, bitflow.SecondsPerBlock, s.config.App.Genesis)
}

// GetBlock get block by time
func (s *service) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return bitflow.GetBlockByTime(ctx, bitflow.SecondsPerBlock, s.config.App.Genesis, t)
}
