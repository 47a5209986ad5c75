package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gehna-next/internal/config"
	"github.com/gehna-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// PaymentRequestEmailInput 付款请求邮件输入
type PaymentRequestEmailInput struct {
	OrderNo      string
	SenderName   string
	TokenPayment models.Money
	TotalPrice   models.Money
	Currency     string
	Message      string
}

// SendPaymentRequestEmail 发送付款请求通知邮件
func (s *EmailService) SendPaymentRequestEmail(toEmail string, input PaymentRequestEmailInput) error {
	subject := fmt.Sprintf("Payment request for order %s", input.OrderNo)
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("A payment request was submitted for order %s.\n\n", input.OrderNo))
	if input.SenderName != "" {
		buf.WriteString(fmt.Sprintf("Requested by: %s\n", input.SenderName))
	}
	buf.WriteString(fmt.Sprintf("Order total: %s %s\n", input.TotalPrice.String(), input.Currency))
	buf.WriteString(fmt.Sprintf("Token payment (30%%): %s %s\n", input.TokenPayment.String(), input.Currency))
	if strings.TrimSpace(input.Message) != "" {
		buf.WriteString(fmt.Sprintf("\nMessage: %s\n", input.Message))
	}
	buf.WriteString("\nPlease review and approve or decline the request.")
	return s.sendTextEmail(toEmail, subject, buf.String())
}

// OrderReceiptEmailInput 支付回执邮件输入
type OrderReceiptEmailInput struct {
	OrderNo          string
	TotalPrice       models.Money
	Currency         string
	GatewayPaymentID string
}

// SendOrderReceiptEmail 发送支付回执邮件
func (s *EmailService) SendOrderReceiptEmail(toEmail string, input OrderReceiptEmailInput) error {
	subject := fmt.Sprintf("Payment received for order %s", input.OrderNo)
	body := fmt.Sprintf(
		"Payment for order %s has been verified.\n\nAmount: %s %s\nPayment reference: %s\n\nThank you.",
		input.OrderNo, input.TotalPrice.String(), input.Currency, input.GatewayPaymentID,
	)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
