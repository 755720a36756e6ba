package telegram

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"unicode/utf16"
)

const maxMessageLength = 4096

type sender interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

// Client posts plain-text alerts to the team chat.
type Client struct {
	api    sender
	chatID int64
}

func NewClient(token string, chatID int64) (*Client, error) {
	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)
	return &Client{api: api, chatID: chatID}, nil
}

func newClientWithSender(api sender, chatID int64) *Client {
	return &Client{api: api, chatID: chatID}
}

func (c *Client) SendText(text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		msg := botApi.NewMessage(c.chatID, chunk)
		msg.DisableWebPagePreview = true
		if _, err := c.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit UTF-16 code units, which is how
// Telegram measures message length. Chunks end at a line break when one is close enough.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)

	var chunks []string
	for len(runes) > 0 {
		units, cut, lastBreak := 0, 0, -1
		for cut < len(runes) {
			width := utf16.RuneLen(runes[cut])
			if width < 0 {
				width = 1
			}
			if units+width > limit {
				break
			}
			units += width
			if runes[cut] == '\n' {
				lastBreak = cut
			}
			cut++
		}
		if cut < len(runes) && lastBreak >= cut/2 {
			cut = lastBreak + 1
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return chunks
}
