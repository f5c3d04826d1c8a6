// Package server wires the sync backend and runs it until the process is
// signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/nutrisync/internal/logging"
	"github.com/dmitrijs2005/nutrisync/internal/server/blobstore"
	"github.com/dmitrijs2005/nutrisync/internal/server/config"
	"github.com/dmitrijs2005/nutrisync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/nutrisync/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/nutrisync/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	recordService *services.RecordService
}

// NewApp opens the database, applies migrations and builds the services.
// Object storage is only contacted when payload offload is enabled.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, false)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var blobs blobstore.Store
	if c.PayloadOffloadBytes > 0 {
		s3, err := blobstore.NewS3Store(ctx, c)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("object storage init error: %w", err)
		}
		blobs = s3
		logger.Info(ctx, "payload offload enabled", "threshold_bytes", c.PayloadOffloadBytes, "bucket", c.S3Bucket)
	}

	us := services.NewUserService(db, rm, c, logger)
	rs := services.NewRecordService(db, rm, blobs, c, logger)

	return &App{config: c, logger: logger, db: db, userService: us, recordService: rs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.recordService, app.config.SecretKey, app.config.AdminKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
