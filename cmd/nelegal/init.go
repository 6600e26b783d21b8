package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SeagCha/Nelegal/internal/pathutil"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type exampleConfig struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Telegram struct {
		BotToken    string `yaml:"bot_token"`
		PollTimeout string `yaml:"poll_timeout"`
	} `yaml:"telegram"`
	LLM struct {
		Endpoint       string  `yaml:"endpoint"`
		Model          string  `yaml:"model"`
		APIKey         string  `yaml:"api_key"`
		Temperature    float64 `yaml:"temperature"`
		RequestTimeout string  `yaml:"request_timeout"`
	} `yaml:"llm"`
	Bot struct {
		TaskTimeout    string `yaml:"task_timeout"`
		MaxConcurrency int    `yaml:"max_concurrency"`
	} `yaml:"bot"`
	Aggregate struct {
		Window string `yaml:"window"`
	} `yaml:"aggregate"`
	Chat struct {
		HistoryMaxMessages int `yaml:"history_max_messages"`
	} `yaml:"chat"`
	FileStateDir string `yaml:"file_state_dir"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter config.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "~/.nelegal"
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = args[0]
			}
			dir = pathutil.ExpandHomePath(dir)
			if strings.TrimSpace(dir) == "" {
				return fmt.Errorf("invalid dir")
			}
			dir = filepath.Clean(dir)

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			cfgPath := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists: %s", cfgPath)
			}

			body, err := renderExampleConfig(dir)
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, body, 0o600); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", cfgPath)
			return nil
		},
	}
}

func renderExampleConfig(stateDir string) ([]byte, error) {
	var cfg exampleConfig
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	cfg.Telegram.BotToken = ""
	cfg.Telegram.PollTimeout = "30s"
	cfg.LLM.Endpoint = "https://api.openai.com"
	cfg.LLM.Model = "gpt-4o"
	cfg.LLM.APIKey = ""
	cfg.LLM.Temperature = 0.8
	cfg.LLM.RequestTimeout = "90s"
	cfg.Bot.TaskTimeout = "2m"
	cfg.Bot.MaxConcurrency = 3
	cfg.Aggregate.Window = "1s"
	cfg.Chat.HistoryMaxMessages = 20
	cfg.FileStateDir = stateDir

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	header := "# nelegal configuration.\n" +
		"# telegram.bot_token and llm.api_key are required to run the bot.\n\n"
	return append([]byte(header), body...), nil
}
