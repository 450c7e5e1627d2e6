package main

import (
	"RaceBus/internal/adapters/clock"
	"RaceBus/internal/adapters/eventbus"
	"RaceBus/internal/adapters/metrics"
	"RaceBus/internal/core/domain"
	"RaceBus/internal/core/ports"
	"RaceBus/internal/race"
	"RaceBus/internal/shared/config"
	"RaceBus/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger := logger.New(cfg.IsDev(), cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Int("countdown_steps", cfg.Countdown.Steps).
		Dur("countdown_tick", cfg.Countdown.Tick).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Metrics
	var busMetrics ports.Metrics = metrics.Noop{}
	if cfg.MetricsAddr != "" {
		prom := metrics.NewProm()
		busMetrics = prom

		serveCtx, cancelServe := context.WithCancel(ctx)
		served := make(chan struct{})
		go func() {
			defer close(served)
			if err := prom.Serve(serveCtx, cfg.MetricsAddr); err != nil {
				baseLogger.Error().Err(err).Msg("Metrics server error")
			}
		}()
		defer func() {
			cancelServe()
			<-served
		}()
		baseLogger.Info().Str("addr", cfg.MetricsAddr).Msg("Metrics endpoint started")
	}

	// 4. Initialize the Event Bus
	bus := eventbus.NewInMemoryEventBus(&baseLogger, eventbus.WithMetrics(busMetrics))

	// 5. Enable the race components. They only know the bus.
	timer := race.NewCountdownTimer(clock.NewScheduler(), cfg.Countdown.Steps, cfg.Countdown.Tick, &baseLogger)
	hud := race.NewHUD(&baseLogger)
	player := race.NewPlayerController(&baseLogger)
	client := race.NewRaceClient(&baseLogger)

	timer.Enable(bus)
	defer timer.Disable()
	hud.Enable(bus)
	defer hud.Disable()
	player.Enable(bus)
	defer player.Disable()
	client.Enable(bus)
	defer client.Disable()

	// 6. Wait for the race to start.
	// Subscribed after the player so it fires once everyone has seen START.
	started, startedSub := race.OnStarted(bus)
	defer startedSub.Unsubscribe()

	baseLogger.Info().Msg("All components enabled, pressing start")
	client.PressStart()

	select {
	case <-started:
		baseLogger.Info().Bool("hud_visible", hud.Visible()).Str("player_status", player.Status()).Msg("Race started")
	case <-ctx.Done():
		baseLogger.Warn().Msg("Interrupted before the race started")
		race.Announce(bus, domain.EventQuit)
		return
	}

	// 7. Stop the race
	hud.PressStop()
	baseLogger.Info().
		Bool("hud_visible", hud.Visible()).
		Bool("start_button", client.ButtonEnabled()).
		Str("player_status", player.Status()).
		Stringer("countdown", timer.State()).
		Msg("Race stopped")

	race.Announce(bus, domain.EventQuit)
}
