package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/example/eatery/internal/currency"
	"github.com/example/eatery/internal/models"
)

// TelegramService handles sending notifications to Telegram.
type TelegramService struct {
	botToken    string
	adminChatID string
	currency    string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID, currencyCode string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		currency:    currencyCode,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// FormatMinorPrice renders an integer minor-unit amount with its currency
// code, e.g. 450 -> "4.50 USD".
func (s *TelegramService) FormatMinorPrice(minor int64) string {
	code := s.currency
	if code == "" {
		code = "USD"
	}
	return currency.ToDisplayDecimal(minor) + " " + code
}

// NotifyRestaurantSaved sends a profile create/update notification to the
// admin chat.
func (s *TelegramService) NotifyRestaurantSaved(r models.Restaurant, created bool) error {
	if s.adminChatID == "" {
		return nil
	}

	action := "updated"
	if created {
		action = "created"
	}

	var menu strings.Builder
	for i, item := range r.MenuItems {
		menu.WriteString(fmt.Sprintf("%d. <b>%s</b> - %s\n", i+1, item.Name, s.FormatMinorPrice(item.Price)))
	}

	message := fmt.Sprintf(`<b>🍽 Restaurant profile %s</b>
<b>Name:</b> %s
<b>Location:</b> %s, %s
<b>Delivery:</b> %s, ~%d min
<b>Cuisines:</b> %s
<b>Menu:</b>
%s`,
		action,
		r.Name,
		r.City,
		r.Country,
		s.FormatMinorPrice(r.DeliveryPrice),
		r.EstimatedDeliveryTime,
		strings.Join(r.Cuisines, ", "),
		menu.String(),
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}
