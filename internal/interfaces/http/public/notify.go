package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

// ReviewNotifier is told about every stored review. Implementations must not block the request.
type ReviewNotifier interface {
	ReviewCreated(review domain.Review)
}

type noopNotifier struct{}

func (noopNotifier) ReviewCreated(domain.Review) {}

// MessengerConfig configures the messenger gateway client.
type MessengerConfig struct {
	Endpoint     string
	Destination  string
	AdminBaseURL string
	Timeout      time.Duration
	Attempts     int
	RetryDelay   time.Duration
	HTTPClient   *http.Client
	Logger       *log.Logger
}

// MessengerNotifier posts new-review notices to the messenger gateway's /messages endpoint.
type MessengerNotifier struct {
	endpoint     string
	destination  string
	adminBaseURL string
	timeout      time.Duration
	attempts     int
	retryDelay   time.Duration
	httpClient   *http.Client
	logger       *log.Logger
}

// NewMessengerNotifier returns nil when no endpoint is configured; callers fall back to a no-op.
func NewMessengerNotifier(cfg MessengerConfig) *MessengerNotifier {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 3
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &MessengerNotifier{
		endpoint:     endpoint,
		destination:  strings.TrimSpace(cfg.Destination),
		adminBaseURL: strings.TrimRight(strings.TrimSpace(cfg.AdminBaseURL), "/"),
		timeout:      timeout,
		attempts:     attempts,
		retryDelay:   cfg.RetryDelay,
		httpClient:   client,
		logger:       cfg.Logger,
	}
}

// ReviewCreated sends the notice in the background. Failures are only logged.
func (n *MessengerNotifier) ReviewCreated(review domain.Review) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout*time.Duration(n.attempts)+n.retryDelay*time.Duration(n.attempts))
		defer cancel()
		if err := n.Notify(ctx, review); err != nil && n.logger != nil {
			n.logger.Printf("管理者通知の送信に失敗 review=%s: %v", review.ID, err)
		}
	}()
}

// Notify sends the notice synchronously with retries.
func (n *MessengerNotifier) Notify(ctx context.Context, review domain.Review) error {
	message := buildReviewNotice(n.adminBaseURL, review)
	identifier := review.ID
	if identifier == "" {
		identifier = "admin"
	}

	var lastErr error
	for i := 0; i < n.attempts; i++ {
		if err := n.send(ctx, identifier, message); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if n.retryDelay > 0 && i < n.attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.retryDelay):
			}
		}
	}
	return lastErr
}

func buildReviewNotice(adminBaseURL string, review domain.Review) string {
	var builder strings.Builder
	author := "Anonym"
	if userID, ok := review.Author.UserID(); ok {
		author = userID
	}
	builder.WriteString(fmt.Sprintf("**%s** hat eine neue Bewertung abgegeben.\n", author))
	builder.WriteString(fmt.Sprintf("- Laden: %s\n", review.ShopID))
	builder.WriteString(fmt.Sprintf("- Bewertung: %d / 5\n", review.Rating))
	if text := strings.TrimSpace(review.Text); text != "" {
		builder.WriteString(fmt.Sprintf("- Text: %s\n", text))
	}
	if adminBaseURL != "" && review.ShopID != "" {
		builder.WriteString(fmt.Sprintf("[Im Adminbereich prüfen](%s/shops/%s/reviews)\n", adminBaseURL, review.ShopID))
	}
	return builder.String()
}

func (n *MessengerNotifier) send(ctx context.Context, userID, text string) error {
	trimmedUserID := strings.TrimSpace(userID)
	if trimmedUserID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId": trimmedUserID,
		"text":   text,
	}
	if n.destination != "" {
		payload["destination"] = n.destination
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, n.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
