package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type NotifierConfig struct {
	SlackBotToken   string `mapstructure:"slack_bot_token"`
	SlackChannelID  string `mapstructure:"slack_channel_id"`
	SlackWebhookURL string `mapstructure:"slack_webhook_url"`
	TelegramToken   string `mapstructure:"telegram_token"`
	TelegramChatID  int64  `mapstructure:"telegram_chat_id"`
}

// An entirely empty notifier config is valid: the run proceeds with
// notifications skipped.
func (config NotifierConfig) validate() error {

	if config.SlackBotToken != "" && config.SlackChannelID == "" {
		return fmt.Errorf("slack_channel_id is required when slack_bot_token is set")
	}

	if config.TelegramToken != "" && config.TelegramChatID == 0 {
		return fmt.Errorf("telegram_chat_id is required when telegram_token is set")
	}

	return nil
}

func (config NotifierConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("notifier.slack_bot_token", "SLACK_BOT_TOKEN"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.slack_channel_id", "SLACK_CHANNEL_ID"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.slack_webhook_url", "SLACK_WEBHOOK_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.telegram_token", "TELEGRAM_TOKEN"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("notifier.telegram_chat_id", "TELEGRAM_CHAT_ID"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
