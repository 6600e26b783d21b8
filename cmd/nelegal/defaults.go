package main

import (
	"time"

	"github.com/spf13/viper"
)

func initViperDefaults() {
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.add_source", false)

	viper.SetDefault("llm.endpoint", "https://api.openai.com")
	viper.SetDefault("llm.model", "gpt-4o")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.temperature", 0.8)
	viper.SetDefault("llm.request_timeout", 90*time.Second)

	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.base_url", "https://api.telegram.org")
	viper.SetDefault("telegram.poll_timeout", 30*time.Second)

	viper.SetDefault("bot.task_timeout", 2*time.Minute)
	viper.SetDefault("bot.max_concurrency", 3)
	viper.SetDefault("aggregate.window", time.Second)
	viper.SetDefault("chat.history_max_messages", 20)

	viper.SetDefault("file_state_dir", "~/.nelegal")
}
