package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stagecast/internal/captions"
	"stagecast/internal/config"
	"stagecast/internal/creds"
	"stagecast/internal/logging"
	"stagecast/internal/readiness"
	"stagecast/internal/services"
)

const (
	viewPath    = "/x/web-interface/view"
	captionPath = "/x/v2/dm/subtitle/draft/save"

	codeNotFound = -404

	requestTimeout = 30 * time.Second
)

// HTTPDoer describes the HTTP client used by the platform API client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the platform's JSON API. It satisfies both
// readiness.StatusClient and captions.SubmitClient.
type Client struct {
	baseURL string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewClient constructs a platform client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return NewClientWithDoer(cfg.Platform.APIBaseURL, &http.Client{Timeout: requestTimeout}, logger)
}

// NewClientWithDoer constructs a platform client around an explicit HTTP
// doer. Tests use this to point at an httptest server.
func NewClientWithDoer(baseURL string, doer HTTPDoer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  doer,
		logger:  logging.NewComponentLogger(logger, "platform"),
	}
}

var (
	_ readiness.StatusClient = (*Client)(nil)
	_ captions.SubmitClient  = (*Client)(nil)
)

type apiEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type viewData struct {
	State int `json:"state"`
	Pages []struct {
		CID  int64  `json:"cid"`
		Page int    `json:"page"`
		Part string `json:"part"`
	} `json:"pages"`
}

// Query fetches the processing status of a published asset. A platform
// -404 maps to services.ErrNotFound so the poller treats it as transient.
func (c *Client) Query(ctx context.Context, remoteMediaID string, credential creds.Credential) (readiness.Status, error) {
	endpoint := c.baseURL + viewPath + "?" + mediaIDQuery(remoteMediaID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return readiness.Status{}, fmt.Errorf("build status request: %w", err)
	}
	setSessionCookies(req, credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return readiness.Status{}, fmt.Errorf("query status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return readiness.Status{}, services.Wrap(services.ErrNotFound, "platform", "status query", remoteMediaID, nil)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return readiness.Status{}, fmt.Errorf("status query returned %d", resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return readiness.Status{}, fmt.Errorf("decode status response: %w", err)
	}
	if envelope.Code == codeNotFound {
		return readiness.Status{}, services.Wrap(services.ErrNotFound, "platform", "status query", remoteMediaID, nil)
	}
	if envelope.Code != 0 {
		return readiness.Status{}, fmt.Errorf("status query rejected: code %d: %s", envelope.Code, envelope.Message)
	}

	var data viewData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return readiness.Status{}, fmt.Errorf("decode status payload: %w", err)
	}
	status := readiness.Status{State: data.State}
	for _, page := range data.Pages {
		status.Pages = append(status.Pages, readiness.Page{CID: page.CID, Ordinal: page.Page, Title: page.Part})
	}
	return status, nil
}

// Submit saves one caption track as a draft on the target part.
func (c *Client) Submit(ctx context.Context, partCID int64, lang string, body captions.Body, credential creds.Credential) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode caption body: %w", err)
	}

	form := url.Values{}
	form.Set("type", "1")
	form.Set("oid", strconv.FormatInt(partCID, 10))
	form.Set("lan", lang)
	form.Set("data", string(data))
	form.Set("submit", "true")
	form.Set("sign", "false")
	form.Set("csrf", credential.CSRFToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+captionPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build caption request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	setSessionCookies(req, credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit caption: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("caption submission returned %d", resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode caption response: %w", err)
	}
	if envelope.Code != 0 {
		return fmt.Errorf("caption submission rejected: code %d: %s", envelope.Code, envelope.Message)
	}
	c.logger.Debug("caption draft saved",
		logging.Int64("part_cid", partCID),
		logging.String("language", lang),
	)
	return nil
}

// mediaIDQuery accepts both id forms the transfer result may carry: the
// numeric aid (with or without its "av" prefix) and the "BV" reference.
func mediaIDQuery(remoteMediaID string) string {
	id := strings.TrimSpace(remoteMediaID)
	if strings.HasPrefix(id, "BV") {
		return "bvid=" + url.QueryEscape(id)
	}
	id = strings.TrimPrefix(strings.ToLower(id), "av")
	return "aid=" + url.QueryEscape(id)
}

func setSessionCookies(req *http.Request, credential creds.Credential) {
	req.AddCookie(&http.Cookie{Name: "SESSDATA", Value: credential.SessionToken})
	req.AddCookie(&http.Cookie{Name: "bili_jct", Value: credential.CSRFToken})
	if credential.DeviceID != "" {
		req.AddCookie(&http.Cookie{Name: "buvid3", Value: credential.DeviceID})
	}
}
