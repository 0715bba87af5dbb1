package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Ruscigno/argus/analysis"
	"github.com/Ruscigno/argus/api"
	"github.com/Ruscigno/argus/brightdata"
	"github.com/Ruscigno/argus/config"
	"github.com/Ruscigno/argus/logging"
	"github.com/Ruscigno/argus/pipeline"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "research API server",
	Long:  `Starts a http server and serves the market research pipeline`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.AutomaticEnv()
}

func startServer() {
	logger := logging.SetupLogger("argus.log")
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.LoadConfig()
	if cfg.BrightDataAPIToken == "" {
		zap.L().Warn("BRIGHT_DATA_API_TOKEN is not set, research runs will fail at the scraping step")
	}

	scraper := brightdata.NewClient(cfg.MCPEndpoint, cfg.BrightDataAPIToken)
	analyzer := analysis.NewClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	runner := pipeline.NewRunner(scraper, analyzer, cfg.MaxProducts)

	router := api.SetupRouter(runner)
	go func() {
		zap.L().Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := router.Run(":" + cfg.HTTPPort); err != nil {
			zap.L().Fatal("failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	zap.L().Info("shutting down...")
}
