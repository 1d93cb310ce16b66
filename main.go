package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gesturecontrol/api"
	"gesturecontrol/automation"
	"gesturecontrol/config"
	"gesturecontrol/service"
	"gesturecontrol/tray"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// setupLogging creates a log file in the log directory with timestamp
// Returns the log file handle (caller should defer Close())
func setupLogging(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create log file with timestamp: log/2025-12-08_21-52-35.log
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, timestamp+".log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Write to both console and file
	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(multiWriter)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	gin.DefaultWriter = multiWriter

	log.Printf("📝 Logging to: %s", logPath)
	return logFile, nil
}

func loadConfig() (config.Config, error) {
	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dryRun := flag.Bool("dry-run", false, "log input primitives instead of sending them to the OS")
	withTray := flag.Bool("tray", false, "show a system tray icon")
	journal := flag.String("journal", "", "SQLite path for the action history")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv()

	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dryRun {
		cfg.DryRun = true
	}
	if *withTray {
		cfg.Tray.Enabled = true
	}
	if *journal != "" {
		cfg.Journal.Path = *journal
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func buildDriver(cfg config.Config) automation.Driver {
	if cfg.DryRun {
		log.Println("🧪 Dry-run mode: input will be logged, not sent")
		return automation.NewDryRunDriver(1920, 1080)
	}
	return automation.NewRobotDriver(cfg.Safety.DisableInterlocks)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup file logging
	logFile, err := setupLogging(cfg.Server.LogDir)
	if err != nil {
		log.Printf("Warning: Failed to setup file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting gesture control backend...")

	dispatcher := service.NewActionDispatcher(buildDriver(cfg), cfg.Scroll)

	// Initialize WebSocket hub
	wsHub := api.NewWebSocketHub()
	go wsHub.Run()
	dispatcher.SetBroadcaster(wsHub)

	services := api.Services{
		Dispatcher: dispatcher,
		Monitor:    service.NewSystemMonitor(dispatcher),
		Hub:        wsHub,
	}

	if cfg.Journal.Path != "" {
		db, err := config.InitDatabase(cfg.Journal.Path)
		if err != nil {
			log.Fatalf("Failed to open action journal: %v", err)
		}
		defer db.Close()

		journal := service.NewActionJournal(db)
		dispatcher.SetJournal(journal)
		services.Journal = journal
	}

	// The classifier is built once here and shared read-only by every request
	if cfg.Classifier.Enabled() {
		client := service.NewInferenceClient(cfg.Classifier)
		classifier, err := service.NewClassificationService(client, cfg.Classifier.CacheSize)
		if err != nil {
			log.Fatalf("Failed to initialize classifier: %v", err)
		}
		services.Classifier = classifier
		log.Printf("Classifier %q ready at %s", client.Model(), cfg.Classifier.Endpoint)
	} else {
		log.Println("Classifier disabled (no endpoint configured), POST /classify not served")
	}

	// Setup HTTP server
	router := gin.Default()
	api.SetupRoutes(router, services)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Tray.Enabled {
		t := tray.New(dispatcher, cfg.Server.Addr, nil)
		go func() {
			<-stop
			t.Quit()
		}()
		t.Run()
	} else {
		<-stop
	}

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	wsHub.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: Server shutdown: %v", err)
	}
	log.Println("Server stopped")
}
