// internal/adapters/notify/config.go
package notify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DavidJovino/deivao-recon/internal/platform/errors"
)

// ChannelType identifica el servicio de destino de un canal.
type ChannelType string

const (
	ChannelDiscord  ChannelType = "discord"
	ChannelSlack    ChannelType = "slack"
	ChannelTelegram ChannelType = "telegram"
	ChannelGeneric  ChannelType = "generic"
)

// ChannelConfig describe un destino de notificación declarado en YAML.
type ChannelConfig struct {
	Type ChannelType `yaml:"type"`

	// WebhookURL para discord, slack y generic
	WebhookURL string `yaml:"webhook_url,omitempty"`

	// BotToken y ChatID para telegram
	BotToken string `yaml:"bot_token,omitempty"`
	ChatID   string `yaml:"chat_id,omitempty"`

	// Events filtra los tipos de evento entregados. Vacío = todos.
	Events []string `yaml:"events,omitempty"`
}

// Validate verifica que el canal tenga los campos que su tipo exige.
func (c ChannelConfig) Validate() error {
	switch c.Type {
	case ChannelDiscord, ChannelSlack, ChannelGeneric:
		if c.WebhookURL == "" {
			return fmt.Errorf("canal %s requiere webhook_url", c.Type)
		}
	case ChannelTelegram:
		if c.BotToken == "" || c.ChatID == "" {
			return fmt.Errorf("canal telegram requiere bot_token y chat_id")
		}
	default:
		return fmt.Errorf("tipo de canal desconocido: %q", c.Type)
	}
	return nil
}

// Config es el archivo de canales de notificación.
type Config struct {
	Channels []ChannelConfig `yaml:"channels"`
}

// LoadConfig lee y valida el archivo YAML de canales.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "leyendo config de notificaciones %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parseando config de notificaciones %s", path)
	}

	for i, ch := range cfg.Channels {
		if err := ch.Validate(); err != nil {
			return Config{}, errors.Wrapf(err, "canal #%d", i+1)
		}
	}
	return cfg, nil
}
