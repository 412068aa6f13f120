package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gatecheck/internal/api"
	"gatecheck/internal/pipeline"
	"gatecheck/internal/report"
	"gatecheck/internal/tow"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:           "gatecheck",
		Short:         "Gate assignment reconciliation and tow sheet tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (optional)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	root.AddCommand(newCheckCmd(&configPath, &debug))
	root.AddCommand(newTowCmd(&configPath, &debug))
	root.AddCommand(newServeCmd(&configPath, &debug))
	return root
}

func newCheckCmd(configPath *string, debug *bool) *cobra.Command {
	var (
		planPath string
		feedPath string
		dateStr  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare plan and FIDS gate assignments and run the static gate rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath == "" || feedPath == "" {
				return fmt.Errorf("both --plan and --feed are required")
			}
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD")
			}

			cfg, logger, err := loadConfig(*configPath, *debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			plan, err := os.Open(planPath)
			if err != nil {
				return err
			}
			defer plan.Close()
			feed, err := os.Open(feedPath)
			if err != nil {
				return err
			}
			defer feed.Close()

			runner := pipeline.New(cfg, logger)
			sections, err := runner.GateCheck(cmd.Context(),
				pipeline.Input{Name: planPath, Reader: plan},
				pipeline.Input{Name: feedPath, Reader: feed},
				date)
			if err != nil {
				return err
			}

			report.Render(cmd.OutOrStdout(), sections)
			return nil
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "gate plan export (.xlsx or .csv)")
	cmd.Flags().StringVar(&feedPath, "feed", "", "AC FIDS export (.xlsx or .csv)")
	cmd.Flags().StringVar(&dateStr, "date", time.Now().Format("2006-01-02"), "date the plan covers (YYYY-MM-DD)")
	return cmd
}

func newTowCmd(configPath *string, debug *bool) *cobra.Command {
	var (
		schedulePath string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "tow",
		Short: "Derive tow moves from a turnaround schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if schedulePath == "" {
				return fmt.Errorf("--schedule is required")
			}

			cfg, logger, err := loadConfig(*configPath, *debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			schedule, err := os.Open(schedulePath)
			if err != nil {
				return err
			}
			defer schedule.Close()

			runner := pipeline.New(cfg, logger)
			sections, instructions, err := runner.TowSheet(cmd.Context(),
				pipeline.Input{Name: schedulePath, Reader: schedule})
			if err != nil {
				return err
			}

			report.Render(cmd.OutOrStdout(), sections)

			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := tow.WriteCSV(f, instructions); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\ntow sheet written to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schedulePath, "schedule", "", "turnaround schedule export (.xlsx or .csv)")
	cmd.Flags().StringVar(&outputPath, "output", "", "write the tow sheet CSV here")
	return cmd
}

func newServeCmd(configPath *string, debug *bool) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipelines over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath, *debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			server := api.New(pipeline.New(cfg, logger), logger, api.Config{Port: port})
			return server.Run()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port")
	return cmd
}
