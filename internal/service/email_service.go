package service

import (
	"fmt"
	"html"
	"io"
	"net/mail"
	"strings"

	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/models"

	"gopkg.in/gomail.v2"
)

// Notifier 业务通知发送接口
type Notifier interface {
	SendWelcome(toEmail string) error
	SendNewsletterWelcome(toEmail string) error
	SendOrderConfirmation(toEmail string, order *models.Order) error
	SendOrderStatusUpdate(toEmail string, order *models.Order) error
	SendPasswordReset(toEmail, token string) error
	SendContactNotification(message *models.ContactMessage) error
}

// mailSender SMTP 投递抽象（gomail.Dialer 实现）
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService 邮件发送服务
// 进程启动时构建一次 Dialer，后续所有邮件复用同一份配置。
type EmailService struct {
	cfg         *config.EmailConfig
	frontendURL string
	sender      mailSender
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig, frontendURL string) *EmailService {
	s := &EmailService{
		cfg:         cfg,
		frontendURL: strings.TrimRight(strings.TrimSpace(frontendURL), "/"),
	}
	if cfg != nil && cfg.Enabled && strings.TrimSpace(cfg.Host) != "" {
		dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		if cfg.UseSSL {
			dialer.SSL = true
		}
		s.sender = dialer
	}
	return s
}

// SendWelcome 注册欢迎邮件
func (s *EmailService) SendWelcome(toEmail string) error {
	return s.send(toEmail, func(m *gomail.Message) {
		m.SetHeader("Subject", "Welcome to our Furniture Marketplace!")
		m.SetBody("text/plain", "Thank you for signing up!")
		m.AddAlternative("text/html", "<b>Thank you for signing up!</b>")
	})
}

// SendNewsletterWelcome 订阅欢迎邮件
func (s *EmailService) SendNewsletterWelcome(toEmail string) error {
	return s.send(toEmail, func(m *gomail.Message) {
		m.SetHeader("Subject", "Thanks for subscribing!")
		m.SetBody("text/plain", "You are now subscribed to the Furniture Shop newsletter.")
		m.AddAlternative("text/html", "<p>You are now subscribed to the <b>Furniture Shop</b> newsletter.</p>")
	})
}

// SendOrderConfirmation 下单确认邮件（附 PDF 发票）
func (s *EmailService) SendOrderConfirmation(toEmail string, order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	invoice, err := GenerateInvoicePDF(order)
	if err != nil {
		return fmt.Errorf("generate invoice: %w", err)
	}
	return s.send(toEmail, func(m *gomail.Message) {
		m.SetHeader("Subject", fmt.Sprintf("Your order #%d confirmation", order.ID))
		m.SetBody("text/plain", fmt.Sprintf("Your order %d has been placed successfully. Please find your invoice attached.", order.ID))
		m.AddAlternative("text/html", fmt.Sprintf(
			"<p>Your order <strong>#%d</strong> has been placed successfully.</p><p>Please find your invoice attached.</p>",
			order.ID,
		))
		m.Attach(invoiceFilename(order.ID), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(invoice)
			return err
		}))
	})
}

// SendOrderStatusUpdate 订单状态变更邮件
func (s *EmailService) SendOrderStatusUpdate(toEmail string, order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	return s.send(toEmail, func(m *gomail.Message) {
		m.SetHeader("Subject", fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status))
		m.SetBody("text/plain", fmt.Sprintf("The status of your order #%d has been updated to: %s.", order.ID, order.Status))
		m.AddAlternative("text/html", fmt.Sprintf(
			"<p>The status of your order <strong>#%d</strong> has been updated to <strong>%s</strong>.</p>",
			order.ID, html.EscapeString(order.Status),
		))
	})
}

// SendPasswordReset 重置密码邮件
func (s *EmailService) SendPasswordReset(toEmail, token string) error {
	link := s.resetLink(token)
	return s.send(toEmail, func(m *gomail.Message) {
		m.SetHeader("Subject", "Reset your password")
		m.SetBody("text/plain", fmt.Sprintf("Use the link below to reset your password. It expires in 1 hour.\n\n%s", link))
		m.AddAlternative("text/html", fmt.Sprintf(
			`<p>Use the link below to reset your password. It expires in 1 hour.</p><p><a href="%s">Reset password</a></p>`,
			html.EscapeString(link),
		))
	})
}

// SendContactNotification 联系表单转发至客服邮箱
func (s *EmailService) SendContactNotification(message *models.ContactMessage) error {
	if message == nil {
		return ErrContactFieldsRequired
	}
	support := ""
	if s.cfg != nil {
		support = strings.TrimSpace(s.cfg.SupportAddress)
	}
	return s.send(support, func(m *gomail.Message) {
		m.SetAddressHeader("Reply-To", message.Email, message.Name)
		m.SetHeader("Subject", fmt.Sprintf("New contact message from %s", message.Name))
		m.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", message.Name, message.Email, message.Message))
		m.AddAlternative("text/html", buildContactHTML(message))
	})
}

func (s *EmailService) send(toEmail string, build func(m *gomail.Message)) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.sender == nil || strings.TrimSpace(s.cfg.From) == "" {
		return ErrEmailServiceNotConfigured
	}
	toEmail = strings.TrimSpace(toEmail)
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", toEmail)
	build(m)
	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *EmailService) resetLink(token string) string {
	base := s.frontendURL
	if base == "" {
		base = "http://localhost:5173"
	}
	return fmt.Sprintf("%s/reset-password?token=%s", base, token)
}

func buildContactHTML(message *models.ContactMessage) string {
	body := html.EscapeString(message.Message)
	body = strings.ReplaceAll(body, "\n", "<br>")
	return fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Message:</strong><br>%s</p>",
		html.EscapeString(message.Name),
		html.EscapeString(message.Email),
		body,
	)
}
