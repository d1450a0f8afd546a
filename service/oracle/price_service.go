package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/fox-one/pkg/logger"
	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/pkg/number"
	"github.com/maydayroblox/bitflow-finance/pkg/resthttp"
	"github.com/shopspring/decimal"
)

type priceService struct {
	config *core.Config
}

// New new oracle price service. The ledger itself never calls this; it
// feeds workers and handlers which pass the price in as a parameter.
func New(config *core.Config) core.IPriceService {
	return &priceService{
		config: config,
	}
}

func (s *priceService) CurrentPrice(ctx context.Context) (int64, error) {
	url := fmt.Sprintf("%s/v1/price", s.config.Oracle.EndPoint)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return 0, err
	}

	var ticker struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return 0, err
	}

	price := number.ToSubunits(ticker.Price)
	if price <= 0 {
		return 0, errors.New("oracle returned non-positive price")
	}

	return price, nil
}
