package netsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/serdarm09/factory-tracker-sub001/internal/config"
)

const defaultBaseURL = "http://localhost:5000"

// Client talks to the NetSim bridge service, which in turn opens the
// legacy Firebird database. Every call is a single request/response round
// trip with no retries; failures come back as *BridgeError values.
//
// The connected flag is advisory only. It is updated by a successful
// Status or Connect call and read by callers for display, but no
// operation is gated on it.
type Client struct {
	baseURL    string
	cfg        config.NetSimConfig
	httpClient *http.Client

	mu        sync.RWMutex
	connected bool
}

// NewClient creates a bridge client from config. An empty api_url falls
// back to the bridge's default local address.
func NewClient(cfg config.NetSimConfig) *Client {
	baseURL := strings.TrimRight(cfg.APIURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		cfg:     cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Connected reports the advisory connection flag.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

// envelope is the bridge's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// rawExcerptLen caps how much of a malformed body is carried in the error
// message for diagnosis.
const rawExcerptLen = 200

func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > rawExcerptLen {
		return s[:rawExcerptLen]
	}
	return s
}

// call performs one round trip and decodes the envelope. The three failure
// modes map to distinct error kinds: transport (request failed), protocol
// (empty or malformed body) and remote (success=false).
func (c *Client) call(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, transportErr("encode request: %v", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, transportErr("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr("%v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr("read response: %v", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, protocolErr("empty response body (HTTP %d)", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, protocolErr("malformed response: %s", truncateBody(raw))
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("bridge reported failure (HTTP %d)", resp.StatusCode)
		}
		return nil, remoteErr(msg)
	}

	return &env, nil
}

func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return protocolErr("malformed data payload: %s", truncateBody(env.Data))
	}
	return nil
}

// StatusInfo is the bridge connectivity state.
type StatusInfo struct {
	Connected bool   `json:"connected"`
	Database  string `json:"database"`
}

// Status checks bridge connectivity and the currently open database.
// A successful check updates the advisory connected flag.
func (c *Client) Status(ctx context.Context) (StatusInfo, error) {
	env, err := c.call(ctx, http.MethodGet, "/api/status", nil)
	if err != nil {
		return StatusInfo{}, err
	}
	var info StatusInfo
	if err := decodeData(env, &info); err != nil {
		return StatusInfo{}, err
	}
	c.setConnected(info.Connected)
	return info, nil
}

// ConnectInfo is the result of opening a database through the bridge.
type ConnectInfo struct {
	Connected     bool   `json:"connected"`
	ServerVersion string `json:"serverVersion"`
	TableCount    int    `json:"tableCount"`
}

type connectRequest struct {
	DatabasePath string `json:"DatabasePath"`
	DatabaseFile string `json:"DatabaseFile"`
	Username     string `json:"Username"`
	Password     string `json:"Password"`
	Charset      string `json:"Charset"`
}

// Connect opens a database on the bridge. Empty credentials fall back to
// the Firebird defaults; the database directory comes from config.
func (c *Client) Connect(ctx context.Context, databaseFile, username, password string) (ConnectInfo, error) {
	if username == "" {
		username = "SYSDBA"
	}
	if password == "" {
		password = "masterkey"
	}
	charset := c.cfg.Charset
	if charset == "" {
		charset = "WIN1254"
	}

	req := connectRequest{
		DatabasePath: c.cfg.DatabasePath,
		DatabaseFile: databaseFile,
		Username:     username,
		Password:     password,
		Charset:      charset,
	}

	env, err := c.call(ctx, http.MethodPost, "/api/database/connect", req)
	if err != nil {
		return ConnectInfo{}, err
	}

	var info ConnectInfo
	if err := decodeData(env, &info); err != nil {
		return ConnectInfo{}, err
	}
	info.Connected = true
	c.setConnected(true)
	return info, nil
}

// ListDatabaseFiles lists the database files visible at a bridge-side path.
func (c *Client) ListDatabaseFiles(ctx context.Context, path string) ([]string, error) {
	if path == "" {
		path = c.cfg.DatabasePath
	}
	env, err := c.call(ctx, http.MethodGet, "/api/database/files?path="+url.QueryEscape(path), nil)
	if err != nil {
		return []string{}, err
	}
	var files []string
	if err := decodeData(env, &files); err != nil {
		return []string{}, err
	}
	return files, nil
}

type queryRequest struct {
	Sql     string `json:"Sql"`
	MaxRows int    `json:"MaxRows"`
}

type queryResult struct {
	Columns    []string `json:"columns"`
	Rows       []Row    `json:"rows"`
	TotalCount int      `json:"totalCount"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
}

// Query executes raw SQL on the bridge and returns the result rows.
// It is the primitive every read operation builds on.
func (c *Client) Query(ctx context.Context, sql string, maxRows int) ([]Row, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/tables/query", queryRequest{Sql: sql, MaxRows: maxRows})
	if err != nil {
		return []Row{}, err
	}
	var result queryResult
	if err := decodeData(env, &result); err != nil {
		return []Row{}, err
	}
	if result.Rows == nil {
		return []Row{}, nil
	}
	return result.Rows, nil
}

// queryOne runs a query and returns the first row, or nil when there is none.
func (c *Client) queryOne(ctx context.Context, sql string) (Row, error) {
	rows, err := c.Query(ctx, sql, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

type deliveryDateRequest struct {
	AlissatisNo  int64  `json:"AlissatisNo"`
	DeliveryDate string `json:"DeliveryDate"`
}

type deliveryDateResult struct {
	RowsAffected int `json:"rowsAffected"`
}

// UpdateDeliveryDate writes one date field on a remote order. A successful
// API call that touched no rows is still a failure.
func (c *Client) UpdateDeliveryDate(ctx context.Context, orderNo int64, date time.Time) error {
	req := deliveryDateRequest{
		AlissatisNo:  orderNo,
		DeliveryDate: date.Format("2006-01-02"),
	}
	env, err := c.call(ctx, http.MethodPost, "/api/tables/order/delivery-date", req)
	if err != nil {
		return err
	}
	var result deliveryDateResult
	if err := decodeData(env, &result); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return remoteErr("order not found or not updated")
	}
	return nil
}
