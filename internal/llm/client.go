package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
)

const defaultBaseURL = "https://api.openai.com/v1"

const systemPrompt = "Eres el asistente de un entrenador personal y coach " +
	"de nutrición. Redacta en castellano, en tono cercano y profesional, " +
	"un análisis breve (3-4 párrafos) de la situación del lead y una " +
	"recomendación inicial. No prometas resultados médicos."

// Client habla con la API de chat completions para redactar el análisis
// personalizado del funnel.
type Client struct {
	apiKey string
	model  string

	baseURL    string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.OpenAIAPIKey,
		model:   cfg.OpenAIModel,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type Profile struct {
	Name     string
	Goal     string
	Modality string
	Notes    string
}

func (c *Client) DraftAnalysis(ctx context.Context, p Profile) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("llm: OPENAI_API_KEY no configurada")
	}

	user := fmt.Sprintf(
		"Nombre: %s\nObjetivo: %s\nModalidad preferida: %s\nNotas: %s",
		p.Name, p.Goal, p.Modality, p.Notes,
	)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(raw),
		}).Error("llm completion failed")

		return "", fmt.Errorf("llm: completion falló con status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm: respuesta sin choices")
	}

	return out.Choices[0].Message.Content, nil
}
