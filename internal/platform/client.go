package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mentorlink/mentorbot/internal/model"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

// Client HTTP-клиент API платформы менторства.
// Платформа владеет менторами, правилами доступности и записями;
// бот только читает первые два и отправляет заявки.
type Client struct {
	baseURL string
	authURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient создаёт клиент платформы
func NewClient(baseURL, authURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		authURL: authURL,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// FetchMentor получает карточку ментора
func (c *Client) FetchMentor(ctx context.Context, mentorID int64) (*model.Mentor, error) {
	var mentor model.Mentor
	endpoint := fmt.Sprintf("%s/api/mentors/%d", c.baseURL, mentorID)
	if err := c.getJSON(ctx, endpoint, &mentor); err != nil {
		return nil, fmt.Errorf("fetch mentor: %w", err)
	}
	return &mentor, nil
}

// ListMentors получает список активных менторов
func (c *Client) ListMentors(ctx context.Context) ([]*model.Mentor, error) {
	var payload struct {
		Mentors []*model.Mentor `json:"mentors"`
	}
	endpoint := fmt.Sprintf("%s/api/mentors", c.baseURL)
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	return payload.Mentors, nil
}

// FetchRuleRecords получает сырые записи правил доступности ментора на
// ограниченное окно вперёд (обычно 30 дней). Декодирование и отбраковка
// некорректных записей происходят выше, в сервисном слое, чтобы кэш
// хранил ответ платформы как есть.
func (c *Client) FetchRuleRecords(ctx context.Context, mentorID int64, from time.Time, days int) ([]RuleRecord, error) {
	query := url.Values{}
	query.Set("from", from.Format(model.DateLayout))
	query.Set("days", strconv.Itoa(days))

	var payload struct {
		Rules []RuleRecord `json:"rules"`
	}
	endpoint := fmt.Sprintf("%s/api/mentors/%d/availability?%s", c.baseURL, mentorID, query.Encode())
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch availability rules: %w", err)
	}

	return payload.Rules, nil
}

// ListBookings получает записи пользователя на сессии.
// Платформа ищет их по telegram id и возвращает вместе с карточками
// менторов, от новых к старым.
func (c *Client) ListBookings(ctx context.Context, telegramID int64) ([]*model.Booking, error) {
	query := url.Values{}
	query.Set("telegram_id", strconv.FormatInt(telegramID, 10))

	var payload struct {
		Bookings []*model.Booking `json:"bookings"`
	}
	endpoint := fmt.Sprintf("%s/api/bookings?%s", c.baseURL, query.Encode())
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return payload.Bookings, nil
}

// SubmitBooking отправляет заявку на сессию.
// Ключ идемпотентности черновика уходит заголовком Idempotency-Key,
// чтобы платформа могла отсечь повторную отправку той же заявки.
func (c *Client) SubmitBooking(ctx context.Context, request model.BookingRequest, idempotencyKey string) (*model.Booking, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal booking request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/bookings", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthRequiredError{LoginURL: c.loginURL(request)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.decodeError(resp)
	}

	var booking model.Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}

	return &booking, nil
}

// getJSON выполняет GET и декодирует успешный ответ в out
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthRequiredError{LoginURL: c.authURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError достаёт человекочитаемое сообщение из тела ошибки.
// Платформа отвечает либо {"error": "..."}, либо {"detail": "..."} —
// найденная строка показывается пользователю дословно.
func (c *Client) decodeError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil {
			message := body.Error
			if message == "" {
				message = body.Detail
			}
			if message != "" {
				return &APIError{StatusCode: resp.StatusCode, Message: message}
			}
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("platform returned status %d", resp.StatusCode),
	}
}

// loginURL строит ссылку на авторизацию с обратным путём к прерванной записи
func (c *Client) loginURL(request model.BookingRequest) string {
	next := url.Values{}
	next.Set("mentor_id", strconv.FormatInt(request.MentorID, 10))
	next.Set("date", request.SessionDate)
	next.Set("start", request.StartTime)

	query := url.Values{}
	query.Set("next", "/bookings/new?"+next.Encode())

	return c.authURL + "?" + query.Encode()
}
