package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"jadwalku/internal/metrics"
)

// The gviz endpoint wraps its JSON payload in a fixed JS callback:
// 47 bytes of prefix and a 2-byte ");" suffix.
const (
	gvizPrefixLen = 47
	gvizSuffixLen = 2
)

const defaultBaseURL = "https://docs.google.com"

// ExtractSpreadsheetID pulls the document id out of a Google Sheets URL.
func ExtractSpreadsheetID(sheetURL string) string {
	_, after, found := strings.Cut(sheetURL, "/d/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "/")
	return id
}

// Client fetches raw cell ranges via the public gviz endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient constructs a client. An empty baseURL targets docs.google.com.
func NewClient(baseURL string, log *zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		log:        log,
	}
}

// UseRedisCache configures optional Redis caching of fetched tables.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// SetRateLimit adjusts the outbound request budget against the endpoint.
func (c *Client) SetRateLimit(perSecond float64, burst int) {
	if perSecond > 0 && burst > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// FetchTable retrieves one cell range as rows of strings. Formatted cell
// values are preferred over raw values; absent cells are skipped.
func (c *Client) FetchTable(ctx context.Context, spreadsheetID, sheetTitle, cellRange string) ([][]string, error) {
	cacheKey := fmt.Sprintf("gviz:%s:%s:%s", spreadsheetID, sheetTitle, cellRange)
	var rows [][]string
	if c.readCache(ctx, cacheKey, &rows) {
		return rows, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?sheet=%s&range=%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.QueryEscape(sheetTitle), url.QueryEscape(cellRange))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	metrics.IncSheetFetch(sheetTitle)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s: %w", sheetTitle, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet %s: status %d", sheetTitle, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	rows, err = decodeEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheetTitle, err)
	}

	c.writeCache(ctx, cacheKey, rows)
	return rows, nil
}

type gvizCell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

type gvizEnvelope struct {
	Table struct {
		Rows []struct {
			C []*gvizCell `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

// decodeEnvelope strips the JS callback wrapper and extracts cell strings.
func decodeEnvelope(body []byte) ([][]string, error) {
	if len(body) <= gvizPrefixLen+gvizSuffixLen {
		return nil, fmt.Errorf("gviz response too short (%d bytes)", len(body))
	}
	payload := body[gvizPrefixLen : len(body)-gvizSuffixLen]

	var env gvizEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode gviz payload: %w", err)
	}

	rows := make([][]string, 0, len(env.Table.Rows))
	for _, row := range env.Table.Rows {
		cells := []string{}
		for _, cell := range row.C {
			if cell == nil {
				continue
			}
			if cell.F != "" {
				cells = append(cells, cell.F)
				continue
			}
			if v := cellValue(cell.V); v != "" {
				cells = append(cells, v)
			}
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, v any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("sheet cache write failed")
	}
}
