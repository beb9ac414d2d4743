package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
	"time"

	"github.com/mwork/studiofinder/internal/domain/studio"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// HTTPSource fetches the catalog document from a remote URL.
type HTTPSource struct {
	url  string
	ua   string
	http *http.Client
}

// NewHTTPSource creates a new remote catalog source
func NewHTTPSource(catalogURL string, timeout time.Duration, ua string) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPSource{
		url: catalogURL,
		ua:  ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (s *HTTPSource) Studios(ctx context.Context) ([]studio.Studio, error) {
	if s == nil || s.http == nil {
		return nil, fmt.Errorf("catalog request error: source is nil")
	}
	if s.url == "" {
		return nil, fmt.Errorf("catalog config error: url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request error: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.ua != "" {
		req.Header.Set("User-Agent", s.ua)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return nil, fmt.Errorf("catalog http error: status=%d body=<failed to read body: %v>", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("catalog http error: status=%d body=%s", resp.StatusCode, string(body))
	}

	return Decode(resp.Body)
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("catalog timeout: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("catalog network error: %w", err)
	}
	return fmt.Errorf("catalog request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}
