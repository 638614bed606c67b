package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oluyemi-1/plagiarism-backend/internal/api"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the analysis pipeline over HTTP:

  GET  /                  service info
  GET  /health            liveness check
  POST /api/v1/analyze    analyze an uploaded document or JSON body
  POST /api/v1/search     query all providers directly
  GET  /api/v1/formats    supported citation formats and file types`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config, 8080)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}

	a, err := buildApp(cfg)
	if err != nil {
		return err
	}

	var searcher api.Searcher
	if a.coordinator != nil {
		searcher = a.coordinator
	}
	server := api.NewServer(a.analyzer, searcher, cfg.Server)

	fmt.Fprintf(os.Stderr, "Listening on :%d\n", cfg.Server.Port)
	return server.Run(cfg.Server.Port)
}
