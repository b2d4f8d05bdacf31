// Package mailer sends transactional e-mail.
package mailer

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"net/url"
	texttemplate "text/template"
	"time"
)

const appName = "Bansho"

// Message is one outgoing e-mail
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

//go:embed templates/password_reset.html
var passwordResetHTML string

//go:embed templates/password_reset.txt
var passwordResetText string

var (
	resetHTMLTmpl = htmltemplate.Must(htmltemplate.New("reset.html").Parse(passwordResetHTML))
	resetTextTmpl = texttemplate.Must(texttemplate.New("reset.txt").Parse(passwordResetText))
)

type passwordResetData struct {
	AppName  string
	Greeting string
	ResetURL string
	Year     int
}

// PasswordResetMessage builds the reset e-mail pointing at
// {appURL}/reset-password?token={token}
func PasswordResetMessage(appURL, to, userName, token string) (Message, error) {
	greeting := "お客様"
	if userName != "" {
		greeting = userName + "様"
	}

	data := passwordResetData{
		AppName:  appName,
		Greeting: greeting,
		ResetURL: appURL + "/reset-password?token=" + url.QueryEscape(token),
		Year:     time.Now().Year(),
	}

	var html, text bytes.Buffer
	if err := resetHTMLTmpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render reset email html: %w", err)
	}
	if err := resetTextTmpl.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render reset email text: %w", err)
	}

	return Message{
		To:      to,
		Subject: "【" + appName + "】パスワードリセットのご案内",
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// LogMailer writes messages to the log instead of sending them.
// Used when no provider key is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info("email not sent, no provider configured",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}
