package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/center-timetable/internal/application"
	"github.com/example/center-timetable/internal/config"
	httptransport "github.com/example/center-timetable/internal/http"
	"github.com/example/center-timetable/internal/importer"
	"github.com/example/center-timetable/internal/persistence"
	"github.com/example/center-timetable/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A local .env is a convenience for development; absence is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := func() string { return uuid.NewString() }
	now := time.Now

	roomRepo := sqlite.NewRoomRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)
	scheduleRepo := sqlite.NewScheduleRepository(pool)

	if err := seedFromCSV(ctx, cfg, roomRepo, sessionRepo, idGenerator, logger); err != nil {
		logger.Error("failed to import seed data", "error", err)
		os.Exit(1)
	}

	roomService := application.NewRoomService(roomRepo, idGenerator, now, logger)
	sessionService := application.NewSessionService(sessionRepo, idGenerator, now, logger)
	timetableService := application.NewTimetableService(scheduleRepo, roomRepo, idGenerator, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Rooms:      httptransport.NewRoomHandler(roomService, logger),
		Sessions:   httptransport.NewSessionHandler(sessionService, logger),
		Occupancy:  httptransport.NewOccupancyHandler(sessionService, logger),
		Schedules:  httptransport.NewScheduleHandler(timetableService, logger),
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("timetable API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedFromCSV imports room and session rosters when configured. Row-level
// problems are logged and skipped; only unreadable files abort startup.
func seedFromCSV(ctx context.Context, cfg config.Config, rooms persistence.RoomRepository, sessions persistence.SessionRepository, idGenerator func() string, logger *slog.Logger) error {
	if cfg.RoomsCSV != "" {
		imported, report, err := importer.LoadRooms(cfg.RoomsCSV)
		if err != nil {
			return err
		}
		logImportReport(logger, cfg.RoomsCSV, report)
		for _, room := range imported {
			room.ID = idGenerator()
			if err := rooms.CreateRoom(ctx, room); err != nil {
				if errors.Is(err, persistence.ErrDuplicate) {
					logger.Info("skipping already imported room", "name", room.Name)
					continue
				}
				return err
			}
		}
		logger.Info("imported rooms", "path", cfg.RoomsCSV, "count", len(imported))
	}

	if cfg.SessionsCSV != "" {
		imported, report, err := importer.LoadSessions(cfg.SessionsCSV)
		if err != nil {
			return err
		}
		logImportReport(logger, cfg.SessionsCSV, report)
		for _, session := range imported {
			session.ID = idGenerator()
			if err := sessions.CreateSession(ctx, session); err != nil {
				return err
			}
		}
		logger.Info("imported sessions", "path", cfg.SessionsCSV, "count", len(imported))
	}

	return nil
}

func logImportReport(logger *slog.Logger, path string, report *importer.Report) {
	if report == nil || !report.HasErrors() {
		return
	}
	for _, rowError := range report.RowErrors {
		logger.Warn("import row flagged", "path", path, "detail", rowError)
	}
}
