package stackbyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RowFields mirrors the spreadsheet table's free-text column labels.
// The labels must match the existing store byte for byte — including
// the trailing space in "Achieved " — so they are JSON tags here, never
// rebuilt from code.
type RowFields struct {
	DateAndTime string `json:"Date and Time"`
	Actual      string `json:"Actual"`
	Achieved    string `json:"Achieved "`
}

// Row is one stored row of the metrics table.
type Row struct {
	ID     string    `json:"id"`
	Fields RowFields `json:"field"`
}

type Client interface {
	ListRows(ctx context.Context) ([]Row, error)
	CreateRow(ctx context.Context, fields RowFields) (*Row, error)
	UpdateRow(ctx context.Context, rowID string, fields RowFields) error
	DeleteRow(ctx context.Context, rowID string) error
}

// StackbyClient talks to the spreadsheet store's fixed table endpoint.
type StackbyClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &StackbyClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *StackbyClient) tableURL() string {
	return fmt.Sprintf("%s/rowlist/%s", c.cfg.Stackby.URL, c.cfg.Stackby.TableID)
}

func (c *StackbyClient) do(ctx context.Context, method, requestURL string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Stackby.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "stackby request failed")
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":      method,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Debug("stackby: request finished")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stackby returned status %d", resp.StatusCode)
	}

	return raw, nil
}

type listResponse struct {
	Data []Row `json:"data"`
}

func (c *StackbyClient) ListRows(ctx context.Context) ([]Row, error) {
	body, err := c.do(ctx, http.MethodGet, c.tableURL(), nil)
	if err != nil {
		return nil, err
	}

	var response listResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "decoding stackby rows")
	}

	return response.Data, nil
}

type createRequest struct {
	Records []createRecord `json:"records"`
}

type createRecord struct {
	Field RowFields `json:"field"`
}

type createResponse struct {
	Data []Row `json:"data"`
}

func (c *StackbyClient) CreateRow(ctx context.Context, fields RowFields) (*Row, error) {
	payload := createRequest{Records: []createRecord{{Field: fields}}}

	body, err := c.do(ctx, http.MethodPost, c.tableURL(), payload)
	if err != nil {
		return nil, err
	}

	var response createResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "decoding stackby create response")
	}

	if len(response.Data) == 0 {
		return nil, errors.New("stackby create returned no row")
	}

	return &response.Data[0], nil
}

type updateRequest struct {
	Records []updateRecord `json:"records"`
}

type updateRecord struct {
	ID    string    `json:"id"`
	Field RowFields `json:"field"`
}

func (c *StackbyClient) UpdateRow(ctx context.Context, rowID string, fields RowFields) error {
	payload := updateRequest{Records: []updateRecord{{ID: rowID, Field: fields}}}

	_, err := c.do(ctx, http.MethodPatch, c.tableURL(), payload)
	return err
}

func (c *StackbyClient) DeleteRow(ctx context.Context, rowID string) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%s", c.tableURL(), rowID), nil)
	return err
}
