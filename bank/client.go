package bank

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

// Client is an HTTP client for the acquiring bank's payments endpoint.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
}

// NewClient returns a client posting to baseURL+"/payments". Every call is
// bounded by timeout; a hung upstream surfaces as a GatewayError instead of
// blocking the submission indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  &fasthttp.Client{},
	}
}

func (c *Client) Authorize(ctx context.Context, authReq AuthorizationRequest) (AuthorizationResult, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	payload, err := sonic.Marshal(authReq)
	if err != nil {
		return AuthorizationResult{}, fmt.Errorf("encoding authorization request: %w", err)
	}

	req.SetRequestURI(c.baseURL + "/payments")
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return AuthorizationResult{}, &GatewayError{Reason: err.Error()}
	}

	if statusCode := resp.StatusCode(); statusCode != http.StatusOK {
		return AuthorizationResult{}, &GatewayError{
			StatusCode: statusCode,
			Reason:     http.StatusText(statusCode),
			Body:       string(resp.Body()),
		}
	}

	var result AuthorizationResult
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		return AuthorizationResult{}, &GatewayError{Reason: fmt.Sprintf("decoding authorization response: %v", err)}
	}

	return result, nil
}
