package persistenceclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	persistencedomain "github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c *PersistenceClient) ListCustomers(ctx context.Context) ([]persistencedomain.CustomerRecord, error) {
	var response []persistencedomain.CustomerRecord

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout())
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/customers", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}

func (c *PersistenceClient) SaveCustomer(ctx context.Context, record persistencedomain.CustomerRecord) (persistencedomain.SaveResponse, error) {
	var response persistencedomain.SaveResponse

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout())
	defer cancel()

	body, err := json.Marshal(record)
	if err != nil {
		return response, fmt.Errorf("erro ao serializar o cliente: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/save", bytes.NewReader(body))
	if err != nil {
		return response, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return response, statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if response.ID <= 0 {
		return response, fmt.Errorf("resposta sem id do cliente salvo")
	}

	return response, nil
}

func (c *PersistenceClient) DeleteCustomer(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout())
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodDelete, "/customers/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	return nil
}

func (c *PersistenceClient) newRequest(ctx context.Context, method, resource string, body io.Reader) (*http.Request, error) {
	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, resource)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	return req, nil
}

// StatusError carrega o status HTTP devolvido pelo serviço de persistência
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("requisição falhou com status: %d", e.StatusCode)
	}
	return fmt.Sprintf("requisição falhou com status: %d: %s", e.StatusCode, e.Message)
}

func statusError(resp *http.Response) error {
	var payload persistencedomain.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return &StatusError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(raw))}
}
