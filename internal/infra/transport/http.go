package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// joinURL appends a resource identifier to a base URL.
func joinURL(baseURL, id string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(id, "/")
}

// classifyTransportErr maps a client error to the loader taxonomy.
// Deadline overruns count as timeouts; everything else is transient.
func classifyTransportErr(op string, start time.Time, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Op: op, Elapsed: time.Since(start)}
	}
	return &domain.TransientError{Op: op, Err: err}
}

// BinaryTransport fetches raw asset bytes by identifier over HTTP.
type BinaryTransport struct {
	baseURL string
	client  *http.Client
}

// NewBinaryTransport creates a transport rooted at baseURL.
func NewBinaryTransport(baseURL string) *BinaryTransport {
	return &BinaryTransport{baseURL: baseURL, client: newHTTPClient()}
}

// Fetch retrieves a resource's bytes. Time bounds come from the caller's
// context; a deadline overrun is reported as a TimeoutError, any other
// failure (including a non-2xx status) as a TransientError.
func (t *BinaryTransport) Fetch(ctx context.Context, resourceID string) ([]byte, error) {
	op := fmt.Sprintf("fetch %s", resourceID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(t.baseURL, resourceID), nil)
	if err != nil {
		return nil, &domain.TransientError{Op: op, Err: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classifyTransportErr(op, start, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransientError{
			Op:  op,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportErr(op, start, err)
	}
	return body, nil
}

// DataTransport fetches structured localized datasets over HTTP.
type DataTransport struct {
	baseURL string
	client  *http.Client
}

// NewDataTransport creates a transport rooted at baseURL.
func NewDataTransport(baseURL string) *DataTransport {
	return &DataTransport{baseURL: baseURL, client: newHTTPClient()}
}

// FetchGameData retrieves and decodes a dataset source. HTTP and network
// failures are transient; a payload that fails to decode, or decodes to a
// dataset with no cities, is a DataParseError and is never retried.
func (t *DataTransport) FetchGameData(ctx context.Context, source string) (*domain.GameData, error) {
	op := fmt.Sprintf("fetch data %s", source)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(t.baseURL, source), nil)
	if err != nil {
		return nil, &domain.TransientError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classifyTransportErr(op, start, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransientError{
			Op:  op,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportErr(op, start, err)
	}

	var data domain.GameData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &domain.DataParseError{Source: source, Err: err}
	}
	if len(data.Cities) == 0 {
		return nil, &domain.DataParseError{Source: source, Err: errors.New("dataset has no cities")}
	}
	return &data, nil
}
