package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"truerate-backend/internal/companies"
	"truerate-backend/internal/oracle"
	"truerate-backend/internal/oracle/openai"
	"truerate-backend/internal/reports"
	"truerate-backend/internal/shared/config"
	"truerate-backend/internal/shared/metrics"
	"truerate-backend/internal/shared/server/middleware"
	"truerate-backend/internal/shared/server/respond"
	"truerate-backend/internal/shared/storage/db"
	"truerate-backend/internal/shared/storage/object"
	localstore "truerate-backend/internal/shared/storage/object/local"
	s3store "truerate-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"ANALYZE": {Rate: 0.2, Burst: 3},
				"DEFAULT": {Rate: 10, Burst: 20},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/analyses") {
					return "ANALYZE"
				}
				return "DEFAULT"
			},
		}),
	)

	// Dependencies
	objects := newObjectStore(cfg)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var store reports.Store
	if sqlDB != nil {
		store = &reports.PGStore{DB: sqlDB}
	} else {
		store = reports.NewMemoryStore()
	}

	reportSvc := reports.NewService(store, newOracleClient(cfg), objects)
	reportHandler := reports.NewHandler(reportSvc)
	companyHandler := companies.NewHandler()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	reportHandler.RegisterRoutes(api)
	companyHandler.RegisterRoutes(api)

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newOracleClient(cfg config.Config) oracle.Client {
	switch cfg.OracleProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OracleModel)
		if err != nil {
			log.Printf("openai oracle unavailable: %v", err)
			return oracle.PlaceholderClient{}
		}
		return client
	default:
		log.Printf("unknown oracle provider %q, using placeholder", cfg.OracleProvider)
		return oracle.PlaceholderClient{}
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
