package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clarix",
	Short: "Clarix - Evidence-based content credibility engine",
	Long: `Clarix assesses the credibility of arbitrary text (news articles, social
posts, transcripts) by decomposing the assessment into independently
verifiable sub-judgments — summary, claim extraction, claim verification,
bias detection — and combining them with a deterministic scoring formula
into a single authenticity verdict.

Clarix does not decide what is true; it measures how well content is
supported and how it tries to persuade.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("clarix v0.2.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.clarix/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.clarix")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CLARIX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig merges defaults, the config file, and environment variables
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetInt("pipeline.max_claims"); v > 0 {
		cfg.Pipeline.MaxClaims = v
	}
	if v := viper.GetString("server.internal_token"); v != "" {
		cfg.Server.InternalToken = v
	}
	if v := viper.GetString("server.allowed_origins"); v != "" {
		cfg.Server.AllowedOrigins = v
	}
	if v := viper.GetInt("server.port"); v > 0 {
		cfg.Server.Port = v
	}

	// API keys come from the environment, never the config file
	switch cfg.LLM.Provider {
	case "azure":
		cfg.LLM.APIKey = os.Getenv("AZURE_OPENAI_API_KEY")
		if v := os.Getenv("AZURE_OPENAI_ENDPOINT"); v != "" {
			cfg.LLM.BaseURL = v
		}
		if v := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); v != "" {
			cfg.LLM.Model = v
		}
	case "ollama", "local":
		if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
			cfg.LLM.BaseURL = v
		}
	default:
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if v := os.Getenv("CLARIX_INTERNAL_TOKEN"); v != "" {
		cfg.Server.InternalToken = v
	}

	return cfg
}
