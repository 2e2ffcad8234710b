package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-ranker/internal/embedding"
	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/ranking"
)

const (
	app       = "resume-ranker"
	envPrefix = "RESUME_RANKER"
)

type Config struct {
	JobFile           string           `mapstructure:"job-file"`
	JobDescription    string           `mapstructure:"job-description"`
	Top               int              `mapstructure:"top"`
	MinimumTotalScore float64          `mapstructure:"minimum-total-score"`
	ExcludeFile       string           `mapstructure:"exclude-file"`
	Output            string           `mapstructure:"output"`
	MetricsFile       string           `mapstructure:"metrics-file"`
	Weights           *ranking.Weights `mapstructure:"weights"`
	Embedding         *EmbeddingConfig `mapstructure:"embedding"`
}

type EmbeddingConfig struct {
	Provider     string `mapstructure:"provider"`
	Model        string `mapstructure:"model"`
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	BaseURL      string `mapstructure:"base-url"`
	Dimensions   int    `mapstructure:"dimensions"`
	TaskType     string `mapstructure:"task-type"`
	Cache        bool   `mapstructure:"cache"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker ranks JSON resumes against a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini-api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("openai-api-key-file", "OPENAI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY_FILE environment variable: %v", err)
	}

	configure(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// configure sets defaults for every key and lets RESUME_RANKER_* variables
// override them, e.g. RESUME_RANKER_EMBEDDING_PROVIDER.
func configure(v *viper.Viper) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper) {
	weights := ranking.DefaultWeights()

	v.SetDefault("job-file", "")
	v.SetDefault("job-description", "")
	v.SetDefault("top", filtering.DefaultTop)
	v.SetDefault("minimum-total-score", 0.0)
	v.SetDefault("exclude-file", "")
	v.SetDefault("output", "")
	v.SetDefault("metrics-file", "")
	v.SetDefault("weights.skill", weights.Skill)
	v.SetDefault("weights.experience", weights.Experience)
	v.SetDefault("weights.education", weights.Education)
	v.SetDefault("weights.keyword", weights.Keyword)
	v.SetDefault("embedding.provider", embedding.ProviderGemini)
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.api-key", "")
	v.SetDefault("embedding.api-key-file", "")
	v.SetDefault("embedding.base-url", "")
	v.SetDefault("embedding.dimensions", 0)
	v.SetDefault("embedding.task-type", "SEMANTIC_SIMILARITY")
	v.SetDefault("embedding.cache", true)
	v.SetDefault("embedding.max-log-length", 200)
}

func initConfig() {
	// Config needed only for rank command now. If there is no config, we can skip initialization
	if rankCmd.CalledAs() == "" {
		return
	}

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

// readConfig reads an explicitly given file or the optional resume-ranker.yaml
// of the current directory.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	v.SetConfigType("yaml")

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}
	if config.Weights == nil {
		weights := ranking.DefaultWeights()
		config.Weights = &weights
	}
	if config.Embedding == nil {
		config.Embedding = &EmbeddingConfig{}
	}

	if err := config.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}

	return config, nil
}
