package xrpc

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

	"github.com/dmitrijs2005/skykit/internal/common"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/logging"
)

// maxResponseSize bounds how much of a response body is read. Larger
// bodies fail with ErrResponseTooLarge.
var maxResponseSize int64 = 16 << 20

// Blob is a raw procedure body, used by com.atproto.repo.uploadBlob.
type Blob struct {
	MimeType string
	Data     []byte
}

// Config holds the settings of an HTTP Client.
type Config struct {
	// Service is the PDS base URL. Defaults to common.DefaultService.
	Service string

	// Proxies maps an NSID prefix to an atproto-proxy header value.
	// Defaults to routing chat.bsky.* to common.DefaultChatProxy.
	Proxies map[string]string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger defaults to a discarding logger.
	Logger logging.Logger

	UserAgent string
}

// Client sends XRPC requests over HTTP and carries the session tokens.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	proxies    map[string]string
	userAgent  string
	log        logging.Logger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	service := cfg.Service
	if service == "" {
		service = common.DefaultService
	}
	service = strings.TrimRight(service, "/")

	u, err := url.Parse(service)
	if err != nil {
		return nil, fmt.Errorf("xrpc: parse service url: %w", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, fmt.Errorf("xrpc: service url must be http(s)://host, got %q", service)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	proxies := cfg.Proxies
	if proxies == nil {
		proxies = map[string]string{common.ChatNamespacePrefix: common.DefaultChatProxy}
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &Client{
		baseURL:    service,
		httpClient: httpClient,
		proxies:    proxies,
		userAgent:  cfg.UserAgent,
		log:        log,
	}, nil
}

// Service returns the base URL requests are sent to.
func (c *Client) Service() string { return c.baseURL }

// SetSession installs the tokens used to authorize subsequent calls.
func (c *Client) SetSession(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// ClearSession drops both tokens.
func (c *Client) ClearSession() {
	c.SetSession("", "")
}

// Namespace returns a tree holding every method in lexicon.Methods bound
// to c. Each group carries a "_service" handle and the root a "_client"
// handle.
func (c *Client) Namespace() *Group {
	root := NewGroup()
	for nsid, kind := range lexicon.Methods {
		if err := root.Add(nsid, c.Method(nsid, kind)); err != nil {
			panic(err)
		}
	}
	root.eachGroup(func(g *Group) {
		g.Set(ServiceNode, Handle{Value: c.baseURL})
	})
	root.Set(ClientNode, Handle{Value: c})
	return root
}

// Method returns a Method that sends nsid as the given kind.
//
// Query input must be nil or url.Values. Procedure input is nil, a Blob or
// any JSON-encodable value.
func (c *Client) Method(nsid string, kind lexicon.Kind) Method {
	if kind == lexicon.Procedure {
		return func(ctx context.Context, input, output any) error {
			return c.Procedure(ctx, nsid, input, output)
		}
	}
	return func(ctx context.Context, input, output any) error {
		var params url.Values
		switch v := input.(type) {
		case nil:
		case url.Values:
			params = v
		default:
			return fmt.Errorf("%w: query %s takes url.Values, got %T", ErrUnsupportedInput, nsid, input)
		}
		return c.Query(ctx, nsid, params, output)
	}
}

// Query sends a GET request.
func (c *Client) Query(ctx context.Context, nsid string, params url.Values, output any) error {
	endpoint := c.baseURL + "/xrpc/" + nsid
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("xrpc: %s: create request: %w", nsid, err)
	}
	return c.do(req, nsid, output)
}

// Procedure sends a POST request.
func (c *Client) Procedure(ctx context.Context, nsid string, input, output any) error {
	var (
		body        io.Reader
		contentType string
	)
	switch v := input.(type) {
	case nil:
	case Blob:
		body = bytes.NewReader(v.Data)
		contentType = v.MimeType
	case *Blob:
		body = bytes.NewReader(v.Data)
		contentType = v.MimeType
	default:
		encoded, err := json.Marshal(input)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUnsupportedInput, nsid, err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/xrpc/"+nsid, body)
	if err != nil {
		return fmt.Errorf("xrpc: %s: create request: %w", nsid, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.do(req, nsid, output)
}

func (c *Client) do(req *http.Request, nsid string, output any) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.bearer(nsid); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	if proxy := c.proxyFor(nsid); proxy != "" {
		req.Header.Set(common.ProxyHeaderName, proxy)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{NSID: nsid, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return &TransportError{NSID: nsid, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(data)) > maxResponseSize {
		return &TransportError{NSID: nsid, Err: fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxResponseSize)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(nsid, resp.StatusCode, data)
	}

	if output == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, output); err != nil {
		return &TransportError{NSID: nsid, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// bearer picks the token for nsid: none for createSession, the refresh
// token for refreshSession and the access token otherwise.
func (c *Client) bearer(nsid string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch nsid {
	case lexicon.ServerCreateSession:
		return ""
	case lexicon.ServerRefreshSession, lexicon.ServerDeleteSession:
		return c.refreshToken
	default:
		return c.accessToken
	}
}

func (c *Client) proxyFor(nsid string) string {
	for prefix, proxy := range c.proxies {
		if strings.HasPrefix(nsid, prefix) {
			return proxy
		}
	}
	return ""
}

func parseAPIError(nsid string, status int, body []byte) *APIError {
	apiErr := &APIError{NSID: nsid, StatusCode: status, Body: body}

	var wire lexicon.ErrorBody
	if json.Unmarshal(body, &wire) == nil && (wire.Error != "" || wire.Message != "") {
		apiErr.Name = wire.Error
		apiErr.Message = wire.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
