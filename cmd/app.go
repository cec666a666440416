package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/example/stadium-booking/internal/booking"
	"github.com/example/stadium-booking/internal/config"
	"github.com/example/stadium-booking/internal/facility"
	"github.com/example/stadium-booking/internal/manager"
	"github.com/example/stadium-booking/internal/metrics"
)

type app struct {
	cfg     config.Config
	manager *manager.Manager
	metrics *metrics.Metrics
}

// newApp builds the store and manager and registers the configured seed facilities.
func newApp(cfg config.Config, log *slog.Logger) (*app, error) {
	m := metrics.New("stadiumbook")
	mgr := manager.New(
		facility.NewRegistry(),
		booking.New(cfg.TotalUnits, time.Now),
		manager.WithRecorder(m),
		manager.WithLogger(log),
	)
	for _, seed := range cfg.Facilities {
		kind, err := facility.ParseKind(seed.Type)
		if err != nil {
			return nil, fmt.Errorf("seed facility %q: %w", seed.Name, err)
		}
		if _, err := mgr.AddFacility(manager.AddFacilityRequest{
			Name:         seed.Name,
			Capacity:     seed.Capacity,
			Kind:         kind,
			SeatType:     seed.SeatType,
			HasProjector: seed.HasProjector,
		}); err != nil {
			return nil, fmt.Errorf("seed facility %q: %w", seed.Name, err)
		}
	}
	return &app{cfg: cfg, manager: mgr, metrics: m}, nil
}
