package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quill/internal/config"
	"quill/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - text paraphrasing API service",
	Long: `Quill is a small HTTP gateway that paraphrases text through
the Gemini generateContent API.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// 命令行参数已绑定到全局 viper，使用同一实例加载
	loaded, err := config.LoadWith(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug().Str("config_file", used).Msg("configuration loaded")
	} else {
		log.Debug().Msg("no config file found, using defaults and environment variables")
	}
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
