package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesbas/supplemental-pay-agent/internal/agent"
	"github.com/jamesbas/supplemental-pay-agent/internal/config"
	"github.com/jamesbas/supplemental-pay-agent/internal/extract"
	"github.com/jamesbas/supplemental-pay-agent/internal/inference"
	"github.com/jamesbas/supplemental-pay-agent/internal/tabular"
)

func newAskCmd() *cobra.Command {
	var (
		role       string
		employeeID string
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				log.Printf("load config failed, using defaults: %v", err)
				cfg = config.DefaultConfig()
			}
			if dataDir != "" {
				cfg.Data.DataDir = dataDir
			}

			dir, err := config.EnsureDataDir(cfg)
			if err != nil {
				return fmt.Errorf("ensure data dir: %w", err)
			}

			connector, err := extract.NewConnector(dir)
			if err != nil {
				return fmt.Errorf("initialize file connector: %w", err)
			}

			timeout := time.Duration(cfg.Inference.TimeoutSeconds) * time.Second
			deps := &agent.Deps{
				Gen: inference.NewClient(
					cfg.Inference.Endpoint,
					cfg.Inference.Deployment,
					cfg.Inference.APIKey(),
					timeout,
				),
				Loader:            tabular.NewLoader(tabular.NewCache()),
				Files:             connector,
				OutlierMultiplier: cfg.Analysis.OutlierMultiplier,
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			content := agent.NewRouter(deps).Route(ctx, args[0], role, employeeID)
			fmt.Println(content)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "hr", "requester role: hr, manager or payroll")
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee id for manager requests")
	cmd.Flags().StringVar(&dataDir, "dataDir", "", "data directory (overrides config)")

	return cmd
}
