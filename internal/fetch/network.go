// internal/fetch/network.go
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// maxBodyBytes caps a response body. Both payloads are a few hundred bytes.
const maxBodyBytes = 64 << 10

// Network is the link the fetcher talks through.
// Reset is called after every failed attempt to recover a broken link.
type Network interface {
	Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
	Reset() error
}

// HTTPNetwork implements Network over net/http.
type HTTPNetwork struct {
	client *http.Client
}

func NewHTTPNetwork() *HTTPNetwork {
	return &HTTPNetwork{client: newHTTPClient()}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          2,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	}
}

// Get performs one GET bounded by timeout and returns the body.
func (n *HTTPNetwork) Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrProtocol, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrProtocol, maxBodyBytes)
	}

	return body, nil
}

// Reset drops every pooled connection and starts over with a fresh transport.
func (n *HTTPNetwork) Reset() error {
	n.client.CloseIdleConnections()
	n.client = newHTTPClient()
	return nil
}
