package mdlite

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []RenderOption
}

// HTTPRender fetches article source text over HTTP(S) and streams the HTML
// fragment to Writer.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return fmt.Errorf("render http: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("render http: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := fetch(ctx, req.Client, req.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return RenderStream(RenderRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Options: req.Options,
	})
}

func fetch(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("render http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return nil, fmt.Errorf("render http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("render http: request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("render http: status %s", resp.Status)
	}
	return resp, nil
}
