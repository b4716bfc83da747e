package dashboard

import (
	"agri-assistant/domain"
	"agri-assistant/pkg/advisory"
	"agri-assistant/pkg/calendar"
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	recentScans = 5

	// Lilongwe
	defaultLat = -13.9626
	defaultLon = 33.7741
)

type (
	StatsProvider interface {
		GetStats(ctx context.Context, userID string) (domain.ProfileStatsResponse, error)
		GetProfile(ctx context.Context, user domain.SessionUser) (domain.ProfileResponse, error)
	}

	ScanHistory interface {
		GetScanHistory(ctx context.Context, userID string, page, limit int) ([]domain.ScanResultResponse, int64, error)
	}

	DashboardService interface {
		GetDashboard(ctx context.Context, user domain.SessionUser) (domain.DashboardResponse, error)
	}

	dashboardService struct {
		stats   StatsProvider
		scans   ScanHistory
		weather calendar.WeatherFetcher
	}
)

func NewDashboardService(stats StatsProvider, scans ScanHistory, weather calendar.WeatherFetcher) DashboardService {
	return &dashboardService{
		stats:   stats,
		scans:   scans,
		weather: weather,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, user domain.SessionUser) (domain.DashboardResponse, error) {
	var (
		res     domain.DashboardResponse
		profile domain.ProfileResponse
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.stats.GetStats(gctx, user.ID)
		res.Stats = stats
		return err
	})
	g.Go(func() error {
		scans, _, err := s.scans.GetScanHistory(gctx, user.ID, 1, recentScans)
		res.RecentScans = scans
		return err
	})
	g.Go(func() error {
		p, err := s.stats.GetProfile(gctx, user)
		profile = p
		return err
	})
	g.Go(func() error {
		res.Weather = advisory.ToWeatherResponse(s.weather.FetchWeather(gctx, defaultLat, defaultLon))
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.DashboardResponse{}, err
	}

	if res.RecentScans == nil {
		res.RecentScans = []domain.ScanResultResponse{}
	}
	res.Location = profile.Location
	return res, nil
}
