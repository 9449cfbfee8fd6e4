package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/chuckle/internal/apiclient"
	"github.com/tinytelemetry/chuckle/internal/router"
	"github.com/tinytelemetry/chuckle/internal/tui"
	"github.com/tinytelemetry/chuckle/internal/viewmodel"
)

// newAPIClient builds the one HTTP client shared by every view model.
// A nil registerer disables request metrics.
func newAPIClient(cfg appConfig, logger *zap.Logger, reg prometheus.Registerer) (*apiclient.Client, error) {
	opts := []apiclient.Option{
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithLogger(logger.Named("apiclient")),
	}
	if reg != nil {
		m, err := apiclient.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, apiclient.WithMetrics(m))
	}
	return apiclient.NewClient(opts...), nil
}

func viewModelOptions(cfg appConfig, logger *zap.Logger) []viewmodel.Option {
	return []viewmodel.Option{
		viewmodel.WithLogger(logger.Named("viewmodel")),
		viewmodel.WithJokeCount(cfg.JokeCount),
	}
}

// runTUI runs the interactive interface, plus the metrics endpoint when
// configured, until the user quits or ctx is cancelled.
func runTUI(ctx context.Context, cfg appConfig, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reg *prometheus.Registry
	if cfg.MetricsAddr != "" {
		reg = newMetricsRegistry()
	}
	client, err := newAPIClient(cfg, logger, registerer(reg))
	if err != nil {
		return err
	}

	endpoints := apiclient.NewEndpoints(cfg.BaseURL)
	nav := router.New()
	opts := viewModelOptions(cfg, logger)

	home := tui.NewHomePage(ctx, viewmodel.NewHome(client, nav, endpoints, opts...))
	app := tui.NewApp(ctx, nav, home, tui.CategoryPages(client, endpoints, opts...), logger.Named("tui"))
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)

	if reg != nil {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.MetricsAddr, reg, logger)
		})
	}

	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(gctx))
		if _, err := p.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
				return fmt.Errorf("TUI requires a real terminal")
			}
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	})

	logger.Info("tui started", zap.String("base_url", cfg.BaseURL))
	err = g.Wait()
	logger.Info("tui stopped", zap.Error(err))
	return err
}

// registerer avoids handing a typed nil to an interface parameter.
func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}
