package zabbix

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zscreen/zscreen/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second

	// APIPath is the JSON-RPC endpoint path appended to server URLs
	APIPath = "/api_jsonrpc.php"

	// contentType is the media type Zabbix expects for JSON-RPC requests
	contentType = "application/json-rpc"
)

// Client talks JSON-RPC 2.0 to a Zabbix server. It is not safe for
// concurrent use; reconciliation issues one call at a time.
type Client struct {
	// BaseURL is the full endpoint URL (ending in /api_jsonrpc.php)
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// token is the session token from Login or SetToken
	token string

	// nextID numbers requests for log correlation
	nextID int
}

// NewClient creates a client for the Zabbix server at serverURL.
// The JSON-RPC endpoint path is appended when missing.
func NewClient(serverURL string) *Client {
	return &Client{
		BaseURL:    NormalizeURL(serverURL),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NormalizeURL appends the JSON-RPC endpoint path to serverURL when it does
// not already include it.
func NormalizeURL(serverURL string) string {
	u := strings.TrimRight(serverURL, "/")
	if !strings.HasSuffix(u, APIPath) {
		u += APIPath
	}
	return u
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// AllowInsecureTLS disables certificate verification, for deployments
// behind self-signed certificates.
func (c *Client) AllowInsecureTLS() {
	c.HTTPClient.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}

// SetToken installs a session token obtained elsewhere, skipping Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Authenticated reports whether the client carries a session token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// APIError is the error object of a JSON-RPC response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`

	// Method is the API method that failed, filled in by the client.
	Method string `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("%s: %s %s (code %d)", e.Method, e.Message, e.Data, e.Code)
	}
	return fmt.Sprintf("%s: %s (code %d)", e.Method, e.Message, e.Code)
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      int         `json:"id"`
	Auth    *string     `json:"auth,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *APIError       `json:"error"`
	ID      int             `json:"id"`
}

// call performs one JSON-RPC request and decodes its result into result
// (skipped when result is nil). Request bodies and tokens are never logged.
func (c *Client) call(method string, params, result interface{}) error {
	c.nextID++
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID,
	}
	// apiinfo.version and user.login reject the auth field
	if c.token != "" && method != "apiinfo.version" && method != "user.login" {
		req.Auth = &c.token
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", method, err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.HTTPClient.Do(httpReq)
	logging.Debug("zabbix api call",
		zap.String("method", method),
		zap.Int("id", req.ID),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", method, err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("%s: decoding response: %w", method, err)
	}
	if rpcResp.Error != nil {
		rpcResp.Error.Method = method
		return rpcResp.Error
	}
	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%s: decoding result: %w", method, err)
		}
	}
	return nil
}

// APIVersion returns the server's API version (apiinfo.version is open to
// unauthenticated callers).
func (c *Client) APIVersion() (string, error) {
	var version string
	if err := c.call("apiinfo.version", struct{}{}, &version); err != nil {
		return "", err
	}
	return version, nil
}

// Login opens an authenticated session. Servers before 5.4 name the
// username parameter "user".
func (c *Client) Login(username, password string) error {
	var token string
	if err := c.call("user.login", loginParams{User: username, Password: password}, &token); err != nil {
		return err
	}
	c.token = token
	return nil
}

// Logout closes the session. A no-op when no session is open.
func (c *Client) Logout() error {
	if c.token == "" {
		return nil
	}
	err := c.call("user.logout", []string{}, nil)
	c.token = ""
	return err
}

// HostGroupsByName resolves host groups by exact name.
func (c *Client) HostGroupsByName(names []string) ([]HostGroup, error) {
	params := getParams{
		Output: "extend",
		Filter: map[string][]string{"name": names},
	}
	var groups []HostGroup
	if err := c.call("hostgroup.get", params, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AllHostGroupNames lists every host group name on the server.
func (c *Client) AllHostGroupNames() ([]string, error) {
	params := getParams{Output: []string{"groupid", "name"}}
	var groups []HostGroup
	if err := c.call("hostgroup.get", params, &groups); err != nil {
		return nil, err
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names, nil
}

// HostsByGroupIDs lists monitored hosts belonging to any of the groups,
// each with its full group membership attached.
func (c *Client) HostsByGroupIDs(groupIDs []string) ([]Host, error) {
	params := getParams{
		Output:         "extend",
		SelectGroups:   "groupid",
		GroupIDs:       groupIDs,
		MonitoredHosts: 1,
	}
	var hosts []Host
	if err := c.call("host.get", params, &hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

// GraphsByName lists a host's graphs whose names contain name
// (the server matches case-insensitively).
func (c *Client) GraphsByName(hostID, name string) ([]Graph, error) {
	params := getParams{
		Output:  "extend",
		Search:  map[string]string{"name": name},
		HostIDs: []string{hostID},
	}
	var graphs []Graph
	if err := c.call("graph.get", params, &graphs); err != nil {
		return nil, err
	}
	return graphs, nil
}

// ScreensByName lists screens whose names contain name.
func (c *Client) ScreensByName(name string) ([]Screen, error) {
	params := getParams{
		Output: "extend",
		Search: map[string]string{"name": name},
	}
	var screenList []Screen
	if err := c.call("screen.get", params, &screenList); err != nil {
		return nil, err
	}
	return screenList, nil
}

// CreateScreen creates an empty screen and returns its id.
func (c *Client) CreateScreen(name string, columns, rows int) (string, error) {
	params := screenCreateParams{Name: name, Columns: columns, Rows: rows}
	var res screenIDsResult
	if err := c.call("screen.create", params, &res); err != nil {
		return "", err
	}
	if len(res.ScreenIDs) == 0 {
		return "", fmt.Errorf("screen.create: no screen id in response")
	}
	return res.ScreenIDs[0], nil
}

// UpdateScreen resizes an existing screen.
func (c *Client) UpdateScreen(id string, columns, rows int) error {
	params := screenUpdateParams{ScreenID: id, Columns: columns, Rows: rows}
	return c.call("screen.update", params, nil)
}

// DeleteScreens deletes the screens with the given ids.
func (c *Client) DeleteScreens(ids []string) error {
	return c.call("screen.delete", ids, nil)
}

// ScreenItems lists the cells attached to a screen.
func (c *Client) ScreenItems(screenID string) ([]ScreenItem, error) {
	params := getParams{
		Output:    "extend",
		ScreenIDs: []string{screenID},
	}
	var items []ScreenItem
	if err := c.call("screenitem.get", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateScreenItem attaches one cell to a screen.
func (c *Client) CreateScreenItem(item ScreenItemCreate) error {
	return c.call("screenitem.create", item, nil)
}

// DeleteScreenItems deletes the given cells. An empty id list is a no-op;
// no request is sent.
func (c *Client) DeleteScreenItems(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.call("screenitem.delete", ids, nil)
}
