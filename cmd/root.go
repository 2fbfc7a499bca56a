package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-screener/internal/jobs"
)

const (
	app = "resume-screener"
)

type Config struct {
	AI        *AIConfig        `mapstructure:"ai"`
	Screening *ScreeningConfig `mapstructure:"screening"`
	Server    *ServerConfig    `mapstructure:"server"`
	Jobs      []jobs.Spec      `mapstructure:"jobs"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey            string  `mapstructure:"api-key"`
	APIKeyFile        string  `mapstructure:"api-key-file"`
	Model             string  `mapstructure:"model"`
	MaxRetries        int     `mapstructure:"max-retries"`
	MaxLogLength      int     `mapstructure:"max-log-length"`
	Temperature       float32 `mapstructure:"temperature"`
	RequestsPerMinute int     `mapstructure:"requests-per-minute"`
}

type ScreeningConfig struct {
	MaxConcurrency int    `mapstructure:"max-concurrency"`
	PDFFallback    bool   `mapstructure:"pdf-fallback"`
	PDFLicenseKey  string `mapstructure:"pdf-license-key"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener scores uploaded resumes against job specs with ATS rules and an AI evaluation",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 2000)
	viper.SetDefault("ai.gemini.temperature", 0.2)
	viper.SetDefault("server.addr", ":8080")
}

func initConfig() {
	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the defaults and environment are enough for some commands.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Screening == nil {
		config.Screening = &ScreeningConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	return config, nil
}
