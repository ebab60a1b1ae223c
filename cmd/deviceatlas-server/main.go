// Command deviceatlas-server exposes device lookups over HTTP.
//
// Configuration comes from the environment (or a .env file):
//
//	DEVICEATLAS_DATASET  path to the JSON dataset (required)
//	HTTP_ADDR            listen address, default :8080
//	LOG_LEVEL            debug, info, warn, error (default from APP_ENV)
//	LOG_FORMAT           json or text (default from APP_ENV)
//	APP_ENV              development, staging, production
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/deviceatlas/pkg/config"
	"github.com/dmitrymomot/deviceatlas/pkg/deviceatlas"
	"github.com/dmitrymomot/deviceatlas/pkg/httpserver"
	"github.com/dmitrymomot/deviceatlas/pkg/logger"
	"github.com/dmitrymomot/deviceatlas/pkg/requestid"
)

func main() {
	var (
		logCfg     logger.Config
		datasetCfg deviceatlas.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&logCfg)

	log := logger.NewFromConfig(logCfg, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		deviceatlas.LoggerExtractor(),
	))
	logger.SetAsDefault(log)

	if err := config.Load(&datasetCfg); err != nil {
		log.Error("invalid dataset configuration", logger.Error(err))
		os.Exit(1)
	}
	if err := config.Load(&httpCfg); err != nil {
		log.Error("invalid http configuration", logger.Error(err))
		os.Exit(1)
	}

	atlas, err := deviceatlas.NewFromConfig(datasetCfg, deviceatlas.WithLogger(log))
	if err != nil {
		log.Error("failed to load dataset", logger.Dataset(datasetCfg.DatasetPath), logger.Error(err))
		os.Exit(1)
	}

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), newRouter(atlas, log)); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
