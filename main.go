// @title FitSync 后端 API
// @version 1.0
// @description FitSync 健康健身平台的后端服务器。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"fitsync_backend/internal/app"
	"fitsync_backend/internal/config"
	"fitsync_backend/pkg/configwatcher"
	"fitsync_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置热更新
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(updated interface{}) {
		newCfg, ok := updated.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("配置已热更新", zap.String("mode", newCfg.Server.Mode))
		*application.Config = *newCfg
	})

	application.Run()
}
