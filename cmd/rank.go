package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/report"
	"github.com/spigell/resume-ranker/internal/resume"
)

const (
	PromptDetails             = "Show candidate details"
	PromptReportByComponent   = "Report by component"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append shortlist to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"

	barWidth = 20
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank [files or directories with JSON resumes]",
	Short: "Rank resumes against a job description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job-description", "", "job description text")
	rankCmd.Flags().String("job-file", "", "file with the job description")
	rankCmd.Flags().IntP("top", "n", filtering.DefaultTop, "number of top candidates to shortlist")
	rankCmd.Flags().Bool("all", false, "shortlist every candidate")
	rankCmd.Flags().Float64("minimum-score", 0, "drop candidates with a lower total score. Default is unset.")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	rankCmd.Flags().StringP("output", "o", "", "write the full ranking as JSON to this file")
	rankCmd.Flags().String("provider", "", "embedding provider: gemini, openai or local")
	rankCmd.Flags().String("model", "", "embedding model name")
	rankCmd.Flags().String("metrics-file", "", "write prometheus metrics in textfile format to this file")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "print the shortlist and exit without asking")

	viper.BindPFlag("job-description", rankCmd.Flags().Lookup("job-description"))
	viper.BindPFlag("job-file", rankCmd.Flags().Lookup("job-file"))
	viper.BindPFlag("top", rankCmd.Flags().Lookup("top"))
	viper.BindPFlag("minimum-total-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("output", rankCmd.Flags().Lookup("output"))
	viper.BindPFlag("embedding.provider", rankCmd.Flags().Lookup("provider"))
	viper.BindPFlag("embedding.model", rankCmd.Flags().Lookup("model"))
	viper.BindPFlag("metrics-file", rankCmd.Flags().Lookup("metrics-file"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	jd, err := loadJobDescription(config)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err),
			zap.String("hint", "use --job-description or --job-file"),
		)
	}

	docs, err := loadDocuments(args, logger)
	if err != nil {
		logger.Fatal("no valid resume data found", zap.Error(err))
	}

	var m *metrics.Metrics
	registry := prometheus.NewRegistry()
	if config.MetricsFile != "" {
		m = metrics.New()
		if err := m.Register(registry); err != nil {
			logger.Fatal("registering metrics", zap.Error(err))
		}
	}

	encoder, err := newEncoder(ctx, config.Embedding, m, logger)
	if err != nil {
		logger.Fatal("building the embedding encoder", zap.Error(err),
			zap.String("hint", "set embedding.api-key-file, GEMINI_API_KEY_FILE/OPENAI_API_KEY_FILE or choose --provider local"),
		)
	}

	ranker, err := ranking.New(encoder,
		ranking.WithWeights(*config.Weights),
		ranking.WithLogger(logger),
		ranking.WithMetrics(m),
	)
	if err != nil {
		logger.Fatal("creating the ranker", zap.Error(err))
	}

	records, err := ranker.Rank(ctx, resume.Records(docs), jd)
	if err != nil {
		logger.Fatal("ranking failed, no results are shown", zap.Error(err))
	}

	if config.MetricsFile != "" {
		if err := metrics.WriteTextfile(config.MetricsFile, registry); err != nil {
			logger.Warn("writing metrics", zap.String("filename", config.MetricsFile), zap.Error(err))
		}
	}

	ranked, err := report.Decorate(records, docs)
	if err != nil {
		logger.Fatal("matching results to files", zap.Error(err))
	}

	if config.Output != "" {
		if err := ranked.ToFile(config.Output); err != nil {
			logger.Fatal("writing results", zap.String("filename", config.Output), zap.Error(err))
		}
		logger.Info("ranking written to file", zap.String("filename", config.Output), zap.Int("count", ranked.Len()))
	}

	filters := prepareFilters(cmd, config, logger)
	logFilters(logger, filters)
	shortlist, err := filters.Run(ctx, ranked.Copy())
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if shortlist.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	fmt.Fprintf(out, "Top %d Candidates\n", shortlist.Len())
	for _, line := range shortlist.Summary(0) {
		fmt.Fprintln(out, line)
	}

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		printDetails(out, shortlist)
		return
	}

	for {
		items := []string{PromptDetails, PromptReportByComponent, PromptCandidatesToFile}
		if config.ExcludeFile != "" && shortlist.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}
		items = append(items, PromptExit)

		prompt := promptui.Select{
			Label: "What next?",
			Items: items,
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Debug("current shortlist", zap.Int("count", shortlist.Len()))

		if err := handleAction(action, out, logger, config, shortlist); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, out io.Writer, logger *zap.Logger, config *Config, shortlist *report.Candidates) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptDetails:
		return showDetails(out, shortlist)
	case PromptReportByComponent:
		printByComponent(out, shortlist)
		return nil
	case PromptCandidatesToFile:
		filename, err := shortlist.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(config.ExcludeFile, logger, shortlist)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(out io.Writer, shortlist *report.Candidates) error {
	for {
		items := append(shortlist.Summary(0), PromptBack)

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: items,
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		fmt.Fprint(out, shortlist.Items[idx].Details(idx+1))
	}
}

func printDetails(out io.Writer, shortlist *report.Candidates) {
	for i, candidate := range shortlist.Items {
		fmt.Fprint(out, candidate.Details(i+1))
	}
}

func printByComponent(out io.Writer, shortlist *report.Candidates) {
	byComponent := shortlist.ByComponent()
	for _, component := range report.ComponentOrder() {
		fmt.Fprintf(out, "%s\n", component)
		for _, entry := range byComponent[component] {
			fmt.Fprintf(out, "  %s %.2f %s\n", report.Bar(entry.Score, barWidth), entry.Score, entry.Candidate)
		}
	}
}

func appendToExcludeFile(path string, logger *zap.Logger, shortlist *report.Candidates) error {
	excluded, err := report.GetExcludedFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(shortlist.ToExcluded("shortlisted"))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", shortlist.Len()))

	shortlist.Exclude(excluded.IDs())
	if shortlist.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left"))
		return errExit
	}
	return nil
}

// loadJobDescription prefers the inline text over the job file.
func loadJobDescription(config *Config) (string, error) {
	jd := config.JobDescription
	if strings.TrimSpace(jd) == "" && strings.TrimSpace(config.JobFile) != "" {
		data, err := os.ReadFile(config.JobFile)
		if err != nil {
			return "", fmt.Errorf("reading job file: %w", err)
		}
		jd = string(data)
	}

	if err := ranking.CheckJobDescription(jd); err != nil {
		return "", err
	}
	return jd, nil
}

// loadDocuments reads every resume, reporting and skipping undecodable files.
func loadDocuments(paths []string, logger *zap.Logger) ([]resume.Document, error) {
	files, err := resume.Collect(paths)
	if err != nil {
		return nil, err
	}

	docs, failed := resume.LoadFiles(files)
	for _, f := range failed {
		logger.Error("skipping resume", zap.String("filename", f.Source), zap.Error(f.Err))
	}

	if len(docs) == 0 {
		return nil, resume.ErrNoDocuments
	}

	logger.Info("resumes loaded", zap.Int("count", len(docs)), zap.Int("skipped", len(failed)))
	return docs, nil
}

func logFilters(logger *zap.Logger, f *filtering.Filtering) {
	for _, status := range f.Describe() {
		fields := []zap.Field{
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
		}
		if status.Reason != "" {
			fields = append(fields, zap.String("reason", status.Reason))
		}
		if len(status.Details) > 0 {
			fields = append(fields, zap.Any("details", status.Details))
		}
		logger.Debug("filter configured", fields...)
	}
}

func prepareFilters(cmd *cobra.Command, config *Config, logger *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewMinimumScore(config.MinimumTotalScore, logger),
		filtering.NewExcludeFile(config.ExcludeFile, logger),
		filtering.NewTop(config.Top, logger),
	}

	f := filtering.New(steps, logger)
	if cmd != nil {
		if all, _ := cmd.Flags().GetBool("all"); all {
			f.DisableByName("top", "all candidates requested")
		}
	}

	return f
}
