package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamesbas/supplemental-pay-agent/internal/config"
	"github.com/jamesbas/supplemental-pay-agent/internal/server"
	"github.com/jamesbas/supplemental-pay-agent/internal/util"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		devMode bool
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, info, err := config.LoadConfigWithInfo()
			if err != nil {
				log.Printf("load config failed, using defaults: %v", err)
				cfg = config.DefaultConfig()
				info = config.LoadConfigInfo{}
			}

			// 命令行参数覆盖配置；config.toml 显式写了 port 时以文件为准
			if port > 0 && !info.PortSpecified {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}
			if dataDir != "" {
				cfg.Data.DataDir = dataDir
			}

			srv, err := server.NewServer(cfg)
			if err != nil {
				return err
			}
			defer srv.Close()

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

			go func() {
				fmt.Printf("listening on %d ...\n", cfg.Server.Port)
				if err := srv.Run(addr); err != nil {
					log.Fatalf("server failed: %v", err)
				}
			}()

			if !cfg.Server.DevMode {
				if err := util.OpenBrowserWithFallback(url); err != nil {
					fmt.Printf("open %s manually\n", url)
				}
			} else {
				fmt.Printf("dev mode: visit %s\n", url)
			}

			fmt.Println("press Ctrl+C to stop")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			fmt.Println("shutting down")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (config.toml wins when it sets one)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "development mode")
	cmd.Flags().StringVar(&dataDir, "dataDir", "", "data directory (overrides config)")

	return cmd
}
