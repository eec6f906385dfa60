package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joelkehle/aireadiness/internal/logging"
	"github.com/joelkehle/aireadiness/internal/readiness"
)

func readSubmission(path string, stdin io.Reader) (readiness.UserContext, error) {
	var (
		blob []byte
		err  error
	)
	if path == "" || path == "-" {
		blob, err = io.ReadAll(stdin)
	} else {
		blob, err = os.ReadFile(path)
	}
	if err != nil {
		return readiness.UserContext{}, fmt.Errorf("read submission: %w", err)
	}
	var uc readiness.UserContext
	if err := json.Unmarshal(blob, &uc); err != nil {
		return readiness.UserContext{}, fmt.Errorf("decode submission: %w", err)
	}
	return uc, nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newGenerateCommand(flags *rootFlags) *cobra.Command {
	var (
		input   string
		offline bool
		persist bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report for one submission and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			uc, err := readSubmission(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, logger, appOptions{offline: offline, skipStore: !persist})
			if err != nil {
				return err
			}
			defer a.Close()

			uc.Language = readiness.ResolveLanguage(uc.Language)
			uc.Score = readiness.ComputeScore(uc.Responses, a.questions)
			res, err := a.cascade.Generate(cmd.Context(), uc)
			if err != nil {
				return err
			}
			logger.Info("report generated", zap.String("id", res.ID), zap.String("tier", string(res.Tier)))
			return writeIndented(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Submission JSON file (default stdin)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the text service and synthesize the report locally")
	cmd.Flags().BoolVar(&persist, "persist", false, "Write the report to the configured store")
	return cmd
}

func newScoreCommand(flags *rootFlags) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a submission and print its derived metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			uc, err := readSubmission(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			questions, err := loadQuestions(cfg)
			if err != nil {
				return err
			}
			uc.Score = readiness.ComputeScore(uc.Responses, questions)
			return writeIndented(cmd.OutOrStdout(), map[string]any{
				"score":     uc.Score,
				"readiness": readiness.ClassifyReadiness(uc.Score),
				"metrics":   readiness.DeriveMetrics(uc),
			})
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Submission JSON file (default stdin)")
	return cmd
}
