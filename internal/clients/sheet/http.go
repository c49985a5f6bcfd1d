package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	entities "github.com/vttbridge/sheet-api/internal/entities/sheet"
	"github.com/vttbridge/sheet-api/internal/errors"
)

const defaultTimeout = 15 * time.Second

// Config contains configuration for the HTTP sheet client.
type Config struct {
	// BaseURL is the sheet service root, e.g. "https://sheets.example.com".
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
	return vb.Build()
}

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTP creates an HTTP-backed sheet client.
func NewHTTP(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.HTTPClient
	if c == nil {
		c = &http.Client{Timeout: defaultTimeout}
	}

	return &httpClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  c,
	}, nil
}

var _ Client = (*httpClient)(nil)

// creatureEnvelope is the wire shape of the sheet service's creature
// endpoint: the raw payload plus ownership metadata.
type creatureEnvelope struct {
	PlayerID   string                  `json:"playerId"`
	Creature   *entities.Creature      `json:"creature"`
	Variables  entities.VariableMap    `json:"variables"`
	Properties []entities.PropertyNode `json:"properties"`
}

func (c *httpClient) GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error) {
	if input == nil || input.CreatureID == "" {
		return nil, errors.InvalidArgument("creature ID is required")
	}

	endpoint := fmt.Sprintf("%s/v1/creatures/%s", c.baseURL, url.PathEscape(input.CreatureID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build creature request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "sheet service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFoundf("creature %s not found", input.CreatureID)
	case resp.StatusCode >= 500:
		return nil, errors.Unavailablef("sheet service returned %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Internalf("sheet service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read creature response")
	}

	var envelope creatureEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrapf(err, "failed to decode creature response")
	}

	return &GetCreatureOutput{
		PlayerID: envelope.PlayerID,
		Payload: &entities.Payload{
			Creature:   envelope.Creature,
			Variables:  envelope.Variables,
			Properties: envelope.Properties,
		},
	}, nil
}

// maxResponseBytes bounds creature payload reads. Large sheets run tens of
// kilobytes; anything past this is a misbehaving upstream.
const maxResponseBytes = 16 << 20
