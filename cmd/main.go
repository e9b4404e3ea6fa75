package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient_monitoring/internal/handlers"
	"patient_monitoring/internal/logger"
	"patient_monitoring/internal/repository"
	"patient_monitoring/internal/server"
	"patient_monitoring/internal/service"
	"patient_monitoring/internal/vitals"

	"github.com/spf13/viper"
)

const defaultSimTick = 1 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	alarms := vitals.NewAlarmController(vitals.NewLogSounder(log), log)
	registry := service.NewRegistryService(repos.Rooms, repos.Patients)
	monitor := vitals.NewMonitor(registry, alarms, repos.Alerts, log)
	services := service.NewService(repos, monitor, log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// vitals source: external sensor feed, or the built-in simulator
	startVitalsSource(ctx, monitor, services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, alarms, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "monitoring.db")
		dbPath = "monitoring.db"
	}
	return repository.InitDB(dbPath)
}

// startVitalsSource wires events into the monitor. A configured feed URL
// takes precedence; the simulator covers setups without real sensors.
func startVitalsSource(ctx context.Context, monitor *vitals.Monitor, services *service.Service, log *logger.Logger) {
	if viper.GetBool("feed.enabled") {
		url := viper.GetString("feed.url")
		if url == "" {
			log.Fatalw("feed.enabled is set but feed.url is empty")
		}
		feed := vitals.NewFeedClient(url, monitor, log)
		go feed.Run(ctx)
		return
	}
	if viper.GetBool("simulator.enabled") {
		tick := viper.GetDuration("simulator.tick")
		if tick <= 0 {
			tick = defaultSimTick
		}
		go services.Simulator.Run(ctx, tick)
		return
	}
	log.Infow("no vitals source configured; rooms will stay empty until a feed connects")
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, alarms *vitals.AlarmController, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// silence any alarm still sounding before the process exits
	alarms.Close(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
