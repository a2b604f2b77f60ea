// supplemental-pay-agent 命令行入口
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "suppay",
		Short: "Supplemental pay reconciliation and analytics service",
		Long: `suppay reconciles employee, payment-terms and hours-claims spreadsheets
into canonical tables and answers role-tagged questions about supplemental pay.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAskCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
