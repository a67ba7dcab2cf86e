package mailing

import (
	"errors"
	"strconv"

	"gopkg.in/gomail.v2"

	"little-lemon/internal/utils"
)

var ErrMailNotConfigured = errors.New("smtp is not configured")

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != ""
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()
	if !emailConfig.Enabled() {
		return ErrMailNotConfigured
	}

	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", emailConfig.SMTPEmail, emailConfig.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}
