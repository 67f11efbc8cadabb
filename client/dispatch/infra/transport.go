package infra

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"crpt-client/client/dispatch/domain"
)

// Constantes do contrato com a API externa.
const (
	// DefaultEndpoint é a URL de criação de documentos do CRPT.
	DefaultEndpoint = "https://ismp.crpt.ru/api/v3/lk/documents/create"
	// ResponseTimeout é o timeout fixo de cada requisição.
	ResponseTimeout = 30 * time.Second
)

// HTTPTransport implementa domain.Transport com um POST síncrono.
//
// Headers e timeout fazem parte do contrato bit-exato com o serviço:
// Content-Type text/plain;charset=UTF-8, Accept application/json,
// Authorization Bearer, timeout de 30s.
type HTTPTransport struct {
	client   *http.Client
	endpoint string
}

type TransportOption func(*HTTPTransport)

// WithEndpoint troca a URL de destino (útil em testes com httptest).
func WithEndpoint(url string) TransportOption {
	return func(t *HTTPTransport) { t.endpoint = url }
}

// WithHTTPClient troca o *http.Client usado nas chamadas.
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *HTTPTransport) { t.client = c }
}

func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client:   &http.Client{Timeout: ResponseTimeout},
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Endpoint retorna a URL de destino configurada.
func (t *HTTPTransport) Endpoint() string { return t.endpoint }

// Send implementa domain.Transport.
func (t *HTTPTransport) Send(ctx context.Context, payload []byte, token string) (domain.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Response{}, err
	}
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := t.client.Do(req)
	if err != nil {
		return domain.Response{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Response{}, err
	}

	return domain.Response{Status: resp.StatusCode, Body: string(body)}, nil
}
