package tushare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"cn-data/internal/model"
)

// DefaultBaseURL is the public Tushare Pro endpoint.
const DefaultBaseURL = "http://api.tushare.pro"

// Config configures a Client. It replaces the process-wide token of the pro_api helper.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *slog.Logger // nil means slog.Default()
}

// Client queries Tushare Pro datasets and returns them as tables.
type Client struct {
	http   *resty.Client
	token  string
	logger *slog.Logger
}

// NewClient constructs a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.New("tushare: token is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		http:   newRestyClient(cfg),
		token:  cfg.Token,
		logger: cfg.Logger,
	}, nil
}

// Close closes idle connections
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

// Query calls api with params and returns the requested fields as a table.
// An empty fields list asks for the dataset's default fields.
func (c *Client) Query(ctx context.Context, api string, params map[string]string, fields []string) (*model.Table, error) {
	if params == nil {
		params = map[string]string{}
	}
	req := Request{
		APIName: api,
		Token:   c.token,
		Params:  params,
		Fields:  strings.Join(fields, ","),
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/")
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", api, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("post %s: http status %d: %s", api, resp.StatusCode(), truncate(resp.String(), 200))
	}
	t, hasMore, err := decodeResponse(resp.Body())
	if err != nil {
		return nil, err
	}
	if hasMore {
		c.logger.Warn("tushare returned a partial page", "api", api, "params", params, "rows", t.Len())
	}
	return t, nil
}

// decodeResponse turns the envelope into a table. hasMore reports a page cut short by the server row limit.
func decodeResponse(body []byte) (t *model.Table, hasMore bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var r Response
	if err := dec.Decode(&r); err != nil {
		return nil, false, fmt.Errorf("parse JSON: %w", err)
	}
	if r.Code != 0 {
		return nil, false, &Error{Code: r.Code, Msg: r.Msg}
	}
	if r.Data == nil {
		return nil, false, errors.New("response has no data")
	}

	t = model.NewTable(r.Data.Fields...)
	t.Rows = make([][]string, 0, len(r.Data.Items))
	for i, item := range r.Data.Items {
		if len(item) != len(r.Data.Fields) {
			return nil, false, fmt.Errorf("item %d has %d values, want %d", i, len(item), len(r.Data.Fields))
		}
		row := make([]string, len(item))
		for j, v := range item {
			s, err := cellString(v)
			if err != nil {
				return nil, false, fmt.Errorf("item %d field %s: %w", i, r.Data.Fields[j], err)
			}
			row[j] = s
		}
		t.Rows = append(t.Rows, row)
	}
	return t, r.Data.HasMore, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
