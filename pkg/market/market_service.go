package market

import (
	"agri-assistant/domain"
	"context"
	"strings"
	"time"
)

const unitMWKPerKg = "MWK/kg"

var priceTable = []domain.MarketPrice{
	{Crop: "Maize", Market: "Lilongwe", Price: 250, Unit: unitMWKPerKg},
	{Crop: "Rice", Market: "Blantyre", Price: 180, Unit: unitMWKPerKg},
	{Crop: "Tobacco", Market: "Limbe", Price: 1200, Unit: unitMWKPerKg},
}

type (
	MarketService interface {
		GetPrices(ctx context.Context, filter domain.MarketPriceFilter) ([]domain.MarketPrice, error)
	}

	marketService struct {
		now func() time.Time
	}
)

func NewMarketService() MarketService {
	return &marketService{now: time.Now}
}

// GetPrices returns today's prices. Crop and market filters match
// case-insensitive substrings; empty filters match everything.
func (s *marketService) GetPrices(ctx context.Context, filter domain.MarketPriceFilter) ([]domain.MarketPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	crop := strings.ToLower(strings.TrimSpace(filter.Crop))
	market := strings.ToLower(strings.TrimSpace(filter.Market))

	prices := make([]domain.MarketPrice, 0, len(priceTable))
	for _, p := range priceTable {
		if crop != "" && !strings.Contains(strings.ToLower(p.Crop), crop) {
			continue
		}
		if market != "" && !strings.Contains(strings.ToLower(p.Market), market) {
			continue
		}
		p.Date = today
		prices = append(prices, p)
	}
	return prices, nil
}
