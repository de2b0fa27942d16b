package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
	"pkt.systems/mdlite"
	"pkt.systems/version"
)

const htmlContentType = "text/html; charset=utf-8"

// previewServer renders POSTed article text. Every request renders from
// scratch; the handlers share no mutable state.
type previewServer struct {
	maxBody     int64
	frontMatter bool
	strict      bool
	router      *gin.Engine
}

func newPreviewServer(cfg config) *previewServer {
	gin.SetMode(gin.ReleaseMode)
	s := &previewServer{
		maxBody:     cfg.MaxBody,
		frontMatter: cfg.FrontMatter,
		strict:      cfg.Strict,
		router:      gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger())
	s.router.GET("/healthz", s.health)
	s.router.POST("/preview", s.preview)
	return s
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		klog.V(2).Infof("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *previewServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": fmt.Sprint(version.Current()),
	})
}

func (s *previewServer) preview(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
	src, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("body exceeds %d bytes", s.maxBody)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.strict {
		if err := mdlite.ValidateInput(src); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}
	switch format := strings.ToLower(c.DefaultQuery("format", "html")); format {
	case "html":
		text := string(src)
		if s.frontMatter {
			if _, rest, ok, _ := mdlite.SplitFrontMatter(text); ok {
				text = rest
			}
		}
		c.Data(http.StatusOK, htmlContentType, []byte(mdlite.Render(text)))
	case "page":
		page, err := mdlite.RenderPage(string(src))
		if err != nil {
			klog.V(1).Infof("preview: %v", err)
		}
		c.Data(http.StatusOK, htmlContentType, []byte(page))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
	}
}

// serve runs the preview server until ctx is done, then shuts it down.
func serve(ctx context.Context, cfg config) error {
	srv := &http.Server{
		Addr:              cfg.Serve,
		Handler:           newPreviewServer(cfg).router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		klog.Infof("serving previews on http://%s", cfg.Serve)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}
