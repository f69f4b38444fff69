package notify

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/events"
	"prospector-engine/internal/logger"
)

// TelegramAlerter forwards hot leads to a Telegram chat. It listens on the
// event bus rather than acting as a router sink, so only individual hot-lead
// alerts reach Telegram; digests stay on the primary sink.
type TelegramAlerter struct {
	api    *botApi.BotAPI
	chatID int64
}

func NewTelegramAlerter(token string, chatID int64, bus EventBus.Bus) (*TelegramAlerter, error) {
	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("telegram alerter authorized on account %s", api.Self.UserName)

	a := &TelegramAlerter{api: api, chatID: chatID}
	if err := bus.Subscribe(events.HotLeadFoundTopic, a.onHotLead); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *TelegramAlerter) onHotLead(event events.HotLeadFound) {
	p := event.Posting
	msg := botApi.NewMessage(a.chatID,
		fmt.Sprintf("🔥 Hot lead: %s at %s (score %d/100)\n%s", p.Title, p.Company, p.Score, p.URL))
	if _, err := a.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending message: %v", err)
	}
}
