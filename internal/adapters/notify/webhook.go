// internal/adapters/notify/webhook.go
package notify

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/errors"
	"github.com/DavidJovino/deivao-recon/internal/platform/httpclient"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/platform/resilience"
)

// deliveryTimeout acota cada intento de entrega. La entrega es
// best-effort: un webhook caído nunca bloquea ni degrada el pipeline.
const deliveryTimeout = 5 * time.Second

// WebhookNotifier entrega eventos a un único canal HTTP.
type WebhookNotifier struct {
	channel ChannelConfig
	client  *httpclient.Client
	backoff resilience.Backoff
	logger  logx.Logger
}

// NewWebhookNotifier crea el notifier para un canal ya validado.
func NewWebhookNotifier(channel ChannelConfig, logger logx.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		channel: channel,
		client:  httpclient.New(httpclient.DefaultConfig()),
		backoff: resilience.DefaultBackoff(),
		logger:  logger.With("component", "notify", "channel", string(channel.Type)),
	}
}

// Notify serializa el evento según el tipo de canal y lo entrega con
// reintentos. Los errores se loguean y se retornan, pero el caller los
// trata como no fatales.
func (n *WebhookNotifier) Notify(ctx context.Context, event ports.Event) error {
	if !n.wants(event.Type) {
		return nil
	}

	endpoint, payload := n.render(event)

	err := n.backoff.Do(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		defer cancel()

		resp, err := n.client.PostJSON(ctx, endpoint, payload)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 400 {
			return fmt.Errorf("webhook respondió %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		n.logger.Warn("entrega de notificación falló",
			"event", string(event.Type),
			"error", err.Error(),
		)
		return errors.Wrapf(err, "entregando evento %s", event.Type)
	}

	n.logger.Debug("notificación entregada", "event", string(event.Type))
	return nil
}

// Close no retiene recursos propios.
func (n *WebhookNotifier) Close() error { return nil }

func (n *WebhookNotifier) wants(t ports.EventType) bool {
	if len(n.channel.Events) == 0 {
		return true
	}
	for _, e := range n.channel.Events {
		if e == string(t) {
			return true
		}
	}
	return false
}

// render produce el endpoint y el payload con el shape que cada
// servicio espera.
func (n *WebhookNotifier) render(event ports.Event) (string, interface{}) {
	switch n.channel.Type {
	case ChannelDiscord:
		return n.channel.WebhookURL, map[string]string{"content": formatMessage(event)}
	case ChannelSlack:
		return n.channel.WebhookURL, map[string]string{"text": formatMessage(event)}
	case ChannelTelegram:
		endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", url.PathEscape(n.channel.BotToken))
		return endpoint, map[string]string{
			"chat_id": n.channel.ChatID,
			"text":    formatMessage(event),
		}
	default:
		// generic: el evento completo como JSON estructurado
		return n.channel.WebhookURL, map[string]interface{}{
			"type":      string(event.Type),
			"timestamp": event.Timestamp.Format(time.RFC3339),
			"run_id":    event.RunID,
			"target":    event.Target,
			"severity":  string(event.Severity),
			"data":      event.Data,
		}
	}
}

// formatMessage arma el texto humano para los canales de chat.
func formatMessage(event ports.Event) string {
	switch data := event.Data.(type) {
	case ports.BatchStartedEvent:
		return fmt.Sprintf("🚀 Recon iniciado: %d targets con %d herramientas",
			len(data.Targets), len(data.Tools))

	case ports.TargetCompletedEvent:
		return fmt.Sprintf("✅ %s terminado (%s): %d subdominios, %d activos en %s",
			event.Target, data.Status, data.Found, data.Active, data.Duration.Round(time.Second))

	case ports.BatchCompletedEvent:
		return fmt.Sprintf("🏁 Recon completado: %d targets (%d degradados, %d fallidos) en %s",
			data.TargetsAttempted, data.TargetsDegraded, data.TargetsFailed,
			data.Duration.Round(time.Second))
	}

	if event.Target != "" {
		return fmt.Sprintf("[%s] %s: %s", event.Severity, event.Type, event.Target)
	}
	return fmt.Sprintf("[%s] %s", event.Severity, event.Type)
}

// MultiNotifier reparte cada evento a varios canales. Las entregas son
// independientes: un canal caído no bloquea a los demás.
type MultiNotifier struct {
	notifiers []ports.Notifier
}

// NewFromConfig construye un notifier compuesto desde el archivo de
// canales. Con cero canales retorna nil (notificaciones deshabilitadas).
func NewFromConfig(cfg Config, logger logx.Logger) ports.Notifier {
	if len(cfg.Channels) == 0 {
		return nil
	}
	m := &MultiNotifier{}
	for _, ch := range cfg.Channels {
		m.notifiers = append(m.notifiers, NewWebhookNotifier(ch, logger))
	}
	return m
}

// Notify entrega a todos los canales y junta los errores.
func (m *MultiNotifier) Notify(ctx context.Context, event ports.Event) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close cierra todos los canales.
func (m *MultiNotifier) Close() error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
