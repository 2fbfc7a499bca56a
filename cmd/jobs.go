package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs [id]",
	Short: "List the configured jobs or show one of them",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}
		showJobs(logger, args)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

func showJobs(logger *zap.Logger, args []string) {
	if err := listJobs(args); err != nil {
		logger.Fatal("listing jobs", zap.Error(err))
	}
}

func listJobs(args []string) error {
	config, err := getConfig()
	if err != nil {
		return err
	}

	catalog, err := newCatalog(config)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		job, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(job, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		fmt.Println()
		fmt.Println(job.DescriptionText())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLEVEL\tSTATUS\tSKILLS")
	for _, job := range catalog.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", job.ID, job.Title, job.ExperienceLevel, job.Status, strings.Join(job.SkillNames(), ", "))
	}
	return w.Flush()
}
