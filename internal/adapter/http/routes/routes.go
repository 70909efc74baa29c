package routes

import (
	"context"
	"net/http"
	"time"

	_ "descarga_masiva/docs" // swag output
	"descarga_masiva/internal/adapter/http/handlers"
	"descarga_masiva/internal/adapter/persistence/repository"
	"descarga_masiva/internal/domain/credentials"
	"descarga_masiva/internal/infrastructure/config"
	"descarga_masiva/internal/infrastructure/database"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/infrastructure/metrics"
	"descarga_masiva/internal/infrastructure/satws"
	"descarga_masiva/internal/infrastructure/storage"
	"descarga_masiva/internal/infrastructure/vault"
	"descarga_masiva/internal/usecase"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run wires the service from cfg and serves HTTP until ctx is done.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	uc, err := buildDownloadUseCase(ctx, cfg, metrics.New(reg), log)
	if err != nil {
		return err
	}
	router := NewRouter(handlers.NewDownloadRequestHandler(uc, log), reg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("[http][server] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve http")
	case <-ctx.Done():
	}

	log.Infof("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown")
	}
	return nil
}

// NewRouter mounts every endpoint on a fresh engine.
func NewRouter(h *handlers.DownloadRequestHandler, gatherer prometheus.Gatherer, log *logger.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, logger.OrDefault(log))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addDownloadRoutes(v1, h)
	return router
}

func setMiddlewares(router *gin.Engine, log *logger.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorf("[http][server] recovered from panic path=%s panic=%v", c.FullPath(), recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func buildDownloadUseCase(ctx context.Context, cfg config.Config, m *metrics.Metrics, log *logger.Logger) (*usecase.DownloadRequestUseCase, error) {
	awsCfg, err := database.NewAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	ddb := database.ConnectDynamoDB(awsCfg)

	sealer, err := newSealer(cfg.Vault, log)
	if err != nil {
		return nil, err
	}
	records := repository.NewLifecycleSnapshotDynamoRepository(ddb, cfg.Dynamo)
	secrets := repository.NewLifecycleSecretDynamoRepository(ddb, sealer, cfg.Dynamo.SecretTable)

	var packages interfaces.IPackageStorage
	switch cfg.Storage.Backend {
	case config.StorageBackendS3:
		packages = storage.NewS3PackageStorage(database.ConnectS3(awsCfg, cfg.AWS), cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.Storage.MaxBytes, log)
	default:
		packages = storage.NewFSPackageStorage(cfg.Storage.Dir, cfg.Storage.MaxBytes, log)
	}

	var (
		gateway interfaces.IRemoteGateway
		signers interfaces.ISignerFactory
	)
	if cfg.Gateway.Mock {
		gateway = satws.NewMockGateway(cfg.Gateway.MockPolls, cfg.Gateway.MockPackages, log)
		signers = satws.NewMockSignerFactory()
	} else {
		bridge := satws.NewBridgeGateway(cfg.Gateway.BridgeURL, cfg.Gateway.BridgeTimeout, cfg.Gateway.BridgeRetryMax, log)
		gateway = bridge
		signers = satws.NewBridgeSignerFactory(bridge)
	}

	lifecycle := usecase.NewLifecycleUseCase(gateway, m, log)
	poller := usecase.NewVerificationPoller(lifecycle, usecase.PollPolicy{
		InitialInterval: cfg.Poll.InitialInterval,
		MaxInterval:     cfg.Poll.MaxInterval,
		MaxElapsed:      cfg.Poll.MaxElapsed,
	}, log)

	return usecase.NewDownloadRequestUseCase(usecase.DownloadRequestDeps{
		Staging:   credentials.NewStagingArea(cfg.CredentialTempDir),
		Signers:   signers,
		Lifecycle: lifecycle,
		Poller:    poller,
		Retriever: usecase.NewPackageRetrieverUseCase(packages, m, log, cfg.Retriever.Concurrency),
		Records:   records,
		Vault:     secrets,
		Log:       log,
	}), nil
}

// newSealer falls back to a per-process key, so stored credentials cannot be
// replayed after a restart.
func newSealer(cfg config.VaultConfig, log *logger.Logger) (*vault.Sealer, error) {
	if cfg.Key == "" {
		log.Warnf("[vault][config] VAULT_KEY is empty; using an ephemeral key")
		return vault.NewEphemeralSealer()
	}
	return vault.NewSealerFromConfig(cfg.Key)
}
