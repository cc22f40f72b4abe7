package gateway

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gearshare/gearshare-backend/internal/identity"
)

// Client forwards validated requests to the core server and relays the
// response verbatim. The gateway never interprets server responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Forward proxies the incoming request to the core server. The body must be
// passed explicitly because validating handlers have already consumed it;
// pass nil for body-less requests.
func (cl *Client) Forward(c *gin.Context, body []byte) {
	target := cl.baseURL + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, bytes.NewReader(body))
	if err != nil {
		cl.logger.Error().Err(err).Str("target", target).Msg("build upstream request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "core server unavailable"})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if v := c.GetHeader(identity.Header); v != "" {
		req.Header.Set(identity.Header, v)
	}

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		cl.logger.Error().Err(err).Str("target", target).Msg("forward failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "core server unavailable"})
		return
	}
	defer resp.Body.Close()

	c.DataFromReader(resp.StatusCode, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
}
