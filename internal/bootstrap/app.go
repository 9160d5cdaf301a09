package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"biography-site/biography/compose"
	"biography-site/biography/gate"
	"biography-site/biography/loader"
	"biography-site/biography/model"
	"biography-site/internal/sessions"
	"biography-site/internal/shared/auth"
	"biography-site/internal/shared/config"
	"biography-site/internal/shared/server"
	"biography-site/internal/shared/storage/db"
	"biography-site/internal/shared/storage/object"
	localstore "biography-site/internal/shared/storage/object/local"
	s3store "biography-site/internal/shared/storage/object/s3"
	"biography-site/internal/shared/telemetry"
	"biography-site/internal/site"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	Record   *model.BiographyRecord
	DB       *sql.DB
	Dialect  db.Dialect
	Media    object.MediaStore
	Sessions *sessions.Service
	Handler  *site.Handler
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// Build loads the biography, prepares storage and wires the router.
// A biography that violates the data contract fails the build.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	rec, err := loader.Load(cfg.BiographyData)
	if err != nil {
		return nil, err
	}

	sqlDB, dialect, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	media, err := NewMediaStore(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	signer, err := auth.NewSigner(cfg.GateTokenSecret, cfg.GateTokenTTL)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("gate signer: %w", err)
	}

	tmpl, err := site.Templates()
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	var repo sessions.Repo
	if sqlDB != nil {
		repo = &sessions.SQLRepo{DB: sqlDB, Dialect: dialect}
	} else {
		repo = sessions.NewMemoryRepo()
	}
	sessionSvc := sessions.NewService(repo)

	handler := site.NewHandler(site.Deps{
		Record:   rec,
		Composer: compose.New(compose.DefaultMediaPrefix),
		Gate: gate.Config{
			Enabled: cfg.GateEnabled,
			Secret:  cfg.GateSecret,
			Delay:   cfg.GateDelay,
		},
		Signer:        signer,
		Sessions:      sessionSvc,
		Media:         media,
		TokenTTL:      cfg.GateTokenTTL,
		SecureCookies: cfg.IsProduction(),
	})

	app := &App{
		Config:   cfg,
		Record:   rec,
		DB:       sqlDB,
		Dialect:  dialect,
		Media:    media,
		Sessions: sessionSvc,
		Handler:  handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Handler:   handler,
		Templates: tmpl,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"gate_enabled": cfg.GateEnabled,
		"media_store":  cfg.MediaStore,
		"sessions":     sessionsBackend(sqlDB, dialect),
	})
	return app, nil
}

// buildDB connects and migrates the unlock session registry. Without a
// DATABASE_URL, or in dev when the database is unreachable, sessions are kept
// in memory.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, db.Dialect, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.memory_sessions", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, "", nil
	}
	target, err := db.ParseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, "", err
	}

	var sqlDB *sql.DB
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB, target.Dialect); err != nil {
			sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_sessions", map[string]any{"reason": "database unavailable", "error": err})
			return nil, "", nil
		}
		return nil, "", err
	}
	return sqlDB, target.Dialect, nil
}

// NewMediaStore returns the image store selected by MEDIA_STORE.
func NewMediaStore(ctx context.Context, cfg config.Config) (object.MediaStore, error) {
	switch cfg.MediaStore {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.MediaDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func sessionsBackend(sqlDB *sql.DB, dialect db.Dialect) string {
	if sqlDB == nil {
		return "memory"
	}
	return string(dialect)
}
