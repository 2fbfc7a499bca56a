package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/jobs"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/upload"
)

var screenCmd = &cobra.Command{
	Use:   "screen [flags] resume.pdf...",
	Short: "Screen resume files against a job",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		screen(cmd, args)
	},
}

type screenReport struct {
	Job     string             `json:"job"`
	Records []screening.Record `json:"records"`
	Skipped []upload.Skipped   `json:"skipped,omitempty"`
	Summary screening.Summary  `json:"summary"`
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().String("job", "", "job id to screen against. Asks interactively when unset.")
	screenCmd.Flags().StringP("output", "o", "", "write the screening records as JSON to this file")
	screenCmd.Flags().Int("max-concurrency", 0, "limit how many resumes are processed at once (0 = no limit)")

	viper.BindPFlag("screening.max-concurrency", screenCmd.Flags().Lookup("max-concurrency"))
}

// screen runs one screening from the command line.
func screen(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-screener", zap.String("version", version))

	catalog, err := newCatalog(config)
	if err != nil {
		logger.Fatal("creating the job catalog", zap.Error(err))
	}

	jobID, _ := cmd.Flags().GetString("job")
	job, err := selectJob(catalog, jobID)
	if err != nil {
		logger.Fatal("selecting a job", zap.Error(err))
	}

	docs := make([]ai.Document, 0, len(args))
	for _, path := range args {
		doc, err := upload.ReadFile(path)
		if err != nil {
			logger.Fatal("reading a resume", zap.Error(err))
		}
		docs = append(docs, doc)
	}

	accepted, skipped, _ := upload.Run(logger.Named("upload"), upload.DefaultRules(), docs)

	orchestrator, err := newOrchestrator(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating the screening pipeline", zap.Error(err))
	}

	records, err := orchestrator.Screen(ctx, &job, accepted)
	if err != nil {
		logger.Fatal("screening", zap.Error(err))
	}

	screening.RankByScore(records)
	for i, rec := range records {
		fields := []zap.Field{
			zap.Int("rank", i+1),
			zap.String("candidate", rec.Name()),
			zap.String("status", string(rec.Status)),
		}
		if rec.FinalScore != nil {
			fields = append(fields,
				zap.Int("final_score", *rec.FinalScore),
				zap.Bool("recommended", rec.Recommended()),
			)
		}
		if rec.SystemScreeningResult != nil {
			fields = append(fields, zap.String("outcome", string(rec.SystemScreeningResult.Outcome())))
		}
		if rec.Error != "" {
			fields = append(fields, zap.String("error", rec.Error))
		}
		logger.Info("screening result", fields...)
	}

	summary := screening.Summarize(records)
	summaryFields := []zap.Field{
		zap.Int("total", summary.Total),
		zap.Int("completed", summary.ByStatus[screening.StatusCompleted]),
		zap.Int("failed", summary.ByStatus[screening.StatusError]),
		zap.Int("rejected", summary.Rejected),
		zap.Int("recommended", summary.Recommended),
		zap.Float64("average_score", summary.AverageScore),
	}
	if summary.Best != nil {
		summaryFields = append(summaryFields,
			zap.String("best_candidate", summary.Best.Name),
			zap.Int("best_score", summary.Best.FinalScore),
		)
	}
	logger.Info("screening finished", summaryFields...)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return
	}

	report := screenReport{Job: job.ID, Records: records, Skipped: skipped, Summary: summary}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Fatal("encoding the report", zap.Error(err))
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		logger.Fatal("writing the report", zap.Error(err))
	}
	logger.Info("report written", zap.String("filename", output))
}

// selectJob resolves the job flag or asks the user to pick one of the active jobs.
func selectJob(catalog *jobs.Catalog, id string) (jobs.Spec, error) {
	if id = strings.TrimSpace(id); id != "" {
		return catalog.Get(id)
	}

	active := catalog.Active()
	if len(active) == 0 {
		return jobs.Spec{}, errors.New("no active jobs configured; pass --job or add jobs to the config")
	}

	items := make([]string, 0, len(active))
	for _, job := range active {
		items = append(items, fmt.Sprintf("%s %s (%s)", job.ID, job.Title, job.ExperienceLevel))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: items,
	}

	_, selected, err := jobPrompt.Run()
	if err != nil {
		return jobs.Spec{}, err
	}

	return catalog.Get(strings.Split(selected, " ")[0])
}
