package gateway

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sweetdreamlabs/sweetdream/internal/config"
)

// Proxy fans /api/* requests out to the backend services by path prefix.
// It relays status codes and JSON bodies untouched, so clients see the
// backend contract rather than a gateway-flavored one.
type Proxy struct {
	cfg    *config.Config
	hc     *http.Client
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) *Proxy {
	return &Proxy{
		cfg:    cfg,
		hc:     &http.Client{},
		logger: logger,
	}
}

// Register mounts the catch-all proxy route.
func (p *Proxy) Register(r *gin.Engine) {
	r.Any("/api/*path", p.Handle)
}

// target resolves which backend a request path belongs to. Auth and
// customer traffic go to the user service, orders to the order service
// and everything else to the catalog.
func (p *Proxy) target(path string) (service, baseURL string) {
	switch {
	case strings.HasPrefix(path, "/auth") || strings.HasPrefix(path, "/customers"):
		return "user", p.cfg.UserServiceURL
	case strings.HasPrefix(path, "/orders"):
		return "order", p.cfg.OrderServiceURL
	default:
		return "catalog", p.cfg.CatalogServiceURL
	}
}

func (p *Proxy) Handle(c *gin.Context) {
	path := c.Param("path")
	service, baseURL := p.target(path)

	url := baseURL + "/api" + path
	if raw := c.Request.URL.RawQuery; raw != "" {
		url += "?" + raw
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, c.Request.Body)
	if err != nil {
		p.fail(c, service, path, err)
		return
	}

	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if auth := c.GetHeader("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if sid := c.GetHeader("X-Session-Id"); sid != "" {
		req.Header.Set("X-Session-Id", sid)
	}
	if rid := c.Writer.Header().Get("X-Request-Id"); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := p.hc.Do(req)
	if err != nil {
		p.fail(c, service, path, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") {
		p.logger.Error().
			Str("service", service).
			Str("path", path).
			Str("contentType", ct).
			Msg("backend returned non-JSON response")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Backend service returned an invalid response",
			"service": service,
		})
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.fail(c, service, path, err)
		return
	}

	c.Data(resp.StatusCode, "application/json", body)
}

func (p *Proxy) fail(c *gin.Context, service, path string, err error) {
	p.logger.Error().
		Err(err).
		Str("service", service).
		Str("path", path).
		Msg("proxy request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Failed to proxy request to backend",
		"service": service,
		"path":    path,
	})
}
