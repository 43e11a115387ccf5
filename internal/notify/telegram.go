package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// DefaultTelegramBaseURL is the public Bot API endpoint.
const DefaultTelegramBaseURL = "https://api.telegram.org"

// ErrNoChat is returned for employees who never linked a Telegram chat.
var ErrNoChat = errors.New("employee has no telegram chat")

// TelegramClient posts messages through the Bot API.
type TelegramClient struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewTelegramClient(token, baseURL string) *TelegramClient {
	if baseURL == "" {
		baseURL = DefaultTelegramBaseURL
	}
	return &TelegramClient{
		token:   token,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(map[string]any{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var res apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("telegram http status: %s", resp.Status)
		}
		return fmt.Errorf("decoding telegram response: %w", err)
	}
	if !res.Ok {
		return fmt.Errorf("telegram: %s", res.Description)
	}
	return nil
}

// EmployeeLookup resolves the employee a message is addressed to.
type EmployeeLookup interface {
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
}

// TelegramDispatcher renders each notice as text and sends it to the
// employee's linked chat.
type TelegramDispatcher struct {
	client    *TelegramClient
	employees EmployeeLookup
}

func NewTelegramDispatcher(client *TelegramClient, employees EmployeeLookup) *TelegramDispatcher {
	return &TelegramDispatcher{client: client, employees: employees}
}

func (d *TelegramDispatcher) NotifyReception(ctx context.Context, employeeID string, n ReceptionNotice) error {
	return d.send(ctx, employeeID, ReceptionText(n))
}

func (d *TelegramDispatcher) NotifyMeeting(ctx context.Context, employeeID string, n MeetingNotice) error {
	return d.send(ctx, employeeID, MeetingText(n))
}

func (d *TelegramDispatcher) NotifyTaskReminder(ctx context.Context, employeeID string, r TaskReminder) error {
	return d.send(ctx, employeeID, TaskReminderText(r))
}

func (d *TelegramDispatcher) send(ctx context.Context, employeeID, text string) error {
	e, err := d.employees.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if e.TelegramChatID == 0 {
		return ErrNoChat
	}
	return d.client.SendMessage(ctx, e.TelegramChatID, text)
}
