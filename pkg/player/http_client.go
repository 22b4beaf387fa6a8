package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPClient 通过 HTTP 调用 Player API（cmd/slingmath-server）
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient 创建 HTTP 客户端
//
// 参数：
//   - baseURL: 服务地址，例如 "http://127.0.0.1:8001"
//   - timeout: 单次请求超时，<= 0 时使用 10 秒
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// apiError 服务端返回的错误结构（与 pkg/api 一致）
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateOrGetPlayer POST /api/player
func (c *HTTPClient) CreateOrGetPlayer(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	body := map[string]string{"playerId": id}
	if err := c.do(ctx, http.MethodPost, "/api/player", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlayer GET /api/player/{id}
func (c *HTTPClient) GetPlayer(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/player/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetQuestion GET /api/question/{level}
func (c *HTTPClient) GetQuestion(ctx context.Context, level int) (*Question, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	var q Question
	if err := c.do(ctx, http.MethodGet, "/api/question/"+strconv.Itoa(level), nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// SubmitAnswer POST /api/answer
func (c *HTTPClient) SubmitAnswer(ctx context.Context, req AnswerRequest) (*AnswerResult, error) {
	var res AnswerResult
	if err := c.do(ctx, http.MethodPost, "/api/answer", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetEquippedSkin 读取玩家档案中的 selectedSkin
func (c *HTTPClient) GetEquippedSkin(ctx context.Context, playerID string) (int, error) {
	p, err := c.GetPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return p.SelectedSkin, nil
}

// SelectSkin POST /api/select-skin/{id}/{skin}
func (c *HTTPClient) SelectSkin(ctx context.Context, playerID string, skin int) (*Profile, error) {
	path := fmt.Sprintf("/api/select-skin/%s/%d", url.PathEscape(playerID), skin)
	var p Profile
	if err := c.do(ctx, http.MethodPost, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UnlockSkin POST /api/unlock-skin/{id}/{skin}
func (c *HTTPClient) UnlockSkin(ctx context.Context, playerID string, skin int) (*Profile, error) {
	path := fmt.Sprintf("/api/unlock-skin/%s/%d", url.PathEscape(playerID), skin)
	var p Profile
	if err := c.do(ctx, http.MethodPost, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// do 发送请求并解码 JSON 响应，把 HTTP 错误映射为包内的哨兵错误
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrServiceUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return statusError(resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrServiceUnavailable, err)
	}
	return nil
}

// statusError 将服务端错误码映射为哨兵错误
func statusError(status int, code, message string) error {
	var sentinel error
	switch code {
	case CodePlayerNotFound:
		sentinel = ErrPlayerNotFound
	case CodeInvalidPlayerID:
		sentinel = ErrInvalidPlayerID
	case CodeInvalidLevel:
		sentinel = ErrInvalidLevel
	case CodeSkinNotOwned:
		sentinel = ErrSkinNotOwned
	default:
		sentinel = ErrServiceUnavailable
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("%w: %s (HTTP %d)", sentinel, message, status)
}
