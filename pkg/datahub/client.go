// Package datahub provides a REST emitter for the DataHub metadata service
// (GMS). It covers the two operations the retention tools need: ingesting
// metadata change proposals and reading back a single aspect.
package datahub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is the maximum time to wait for GMS responses.
const DefaultTimeout = 30 * time.Second

// maxErrorBodyBytes caps how much of an error response body is kept.
const maxErrorBodyBytes = 4096

// HTTPStatusError is returned for non-2xx GMS responses.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTPStatusError(%d %s): %s", e.StatusCode, e.Status, e.Body)
}

// Client provides access to the GMS REST API.
type Client struct {
	httpClient *http.Client
	gmsURL     string
	token      string
	logger     *zap.Logger
}

// NewClient creates a GMS client. gmsURL is the server base URL
// (e.g. https://your-instance.acryl.io/gms); token is a personal access
// token sent as a Bearer credential.
func NewClient(gmsURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		gmsURL: strings.TrimRight(gmsURL, "/"),
		token:  token,
		logger: logger.Named("datahub"),
	}
}

// proposal is the ingestProposal envelope. The aspect payload is carried as
// a JSON string per the GMS wire format.
type proposal struct {
	EntityType string          `json:"entityType"`
	EntityURN  string          `json:"entityUrn"`
	ChangeType string          `json:"changeType"`
	AspectName string          `json:"aspectName"`
	Aspect     proposalPayload `json:"aspect"`
}

type proposalPayload struct {
	ContentType string `json:"contentType"`
	Value       string `json:"value"`
}

// EmitAspect upserts one aspect on one entity via ingestProposal.
func (c *Client) EmitAspect(ctx context.Context, entityType, entityURN, aspectName string, aspect any) error {
	value, err := json.Marshal(aspect)
	if err != nil {
		return fmt.Errorf("marshal %s aspect: %w", aspectName, err)
	}

	body, err := json.Marshal(map[string]proposal{
		"proposal": {
			EntityType: entityType,
			EntityURN:  entityURN,
			ChangeType: "UPSERT",
			AspectName: aspectName,
			Aspect: proposalPayload{
				ContentType: "application/json",
				Value:       string(value),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal proposal: %w", err)
	}

	endpoint := c.gmsURL + "/aspects?action=ingestProposal"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create ingest request: %w", err)
	}
	c.setHeaders(req)

	c.logger.Debug("Emitting aspect",
		zap.String("entity_urn", entityURN),
		zap.String("aspect", aspectName))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emit %s for %s: %w", aspectName, entityURN, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// GetAspect reads the latest version of one aspect into out. It returns
// ErrAspectNotFound when the entity or aspect does not exist.
func (c *Client) GetAspect(ctx context.Context, entityURN, aspectName string, out any) error {
	endpoint := fmt.Sprintf("%s/aspects/%s?aspect=%s&version=0",
		c.gmsURL, url.PathEscape(entityURN), url.QueryEscape(aspectName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create get request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s for %s: %w", aspectName, entityURN, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrAspectNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	// The versioned aspect envelope keys the payload by its fully qualified
	// model name, e.g. com.linkedin.structured.StructuredPropertySettings.
	var envelope struct {
		Aspect map[string]json.RawMessage `json:"aspect"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s for %s: %w", aspectName, entityURN, err)
	}
	if len(envelope.Aspect) == 0 {
		return ErrAspectNotFound
	}
	if len(envelope.Aspect) > 1 {
		return fmt.Errorf("ambiguous aspect envelope for %s: %d entries", aspectName, len(envelope.Aspect))
	}
	for _, raw := range envelope.Aspect {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RestLi-Protocol-Version", "2.0.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
}
