package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Webhook envia alertas em JSON para uma URL configurada.
type Webhook struct {
	URL    string
	Client *http.Client
	log    zerolog.Logger
}

// NovoWebhook devolve nil quando url é vazia, desligando os alertas.
func NovoWebhook(url string, log zerolog.Logger) *Webhook {
	if url == "" {
		return nil
	}
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
		log:    log.With().Str("component", "webhook").Logger(),
	}
}

type alertaPayload struct {
	Mensagem string            `json:"mensagem"`
	Campos   map[string]string `json:"campos,omitempty"`
	Em       time.Time         `json:"em"`
}

// Notificar publica o alerta. Um receptor nil não faz nada.
func (w *Webhook) Notificar(ctx context.Context, mensagem string, campos map[string]string) error {
	if w == nil {
		return nil
	}
	body, err := json.Marshal(alertaPayload{Mensagem: mensagem, Campos: campos, Em: time.Now().UTC()})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("montar webhook: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	w.log.Info().Str("mensagem", mensagem).Msg("alerta enviado")
	return nil
}
