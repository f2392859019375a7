package services

import (
	"fmt"
	"net/smtp"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Sender dispatches a rendered HTML email. The SMTP implementation is
// the production one; tests substitute a recording fake.
type Sender interface {
	Send(to, subject, html string) error
}

type SMTPSender struct {
	Host string
	Port string
	From string
}

func (s *SMTPSender) Send(to, subject, html string) error {
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		html,
	}, "\r\n")
	addr := s.Host + ":" + s.Port
	return smtp.SendMail(addr, nil, s.From, []string{to}, []byte(msg))
}

// EmailService renders the verify.html template and sends account mail.
// The template carries {{link}} and {{headerText}} placeholders.
type EmailService struct {
	Sender       Sender
	TemplatesDir string
	BaseURL      string
}

func (s *EmailService) render(link, headerText string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.TemplatesDir, "verify.html"))
	if err != nil {
		return "", fmt.Errorf("load email template: %w", err)
	}
	html := strings.ReplaceAll(string(raw), "{{link}}", link)
	html = strings.ReplaceAll(html, "{{headerText}}", headerText)
	return html, nil
}

func (s *EmailService) SendConfirmation(to, userID, token string) error {
	link := fmt.Sprintf("%s/confirm-email?userId=%s&token=%s",
		s.BaseURL, url.QueryEscape(userID), url.QueryEscape(token))
	html, err := s.render(link, "Confirm your email")
	if err != nil {
		return err
	}
	return s.Sender.Send(to, "Register Confirmation", html)
}

func (s *EmailService) SendPasswordReset(to, userID, token string) error {
	link := fmt.Sprintf("%s/reset-password?userId=%s&token=%s",
		s.BaseURL, url.QueryEscape(userID), url.QueryEscape(token))
	html, err := s.render(link, "Reset your password")
	if err != nil {
		return err
	}
	return s.Sender.Send(to, "Password Reset", html)
}
