package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"paylink/internal/models/db_models"
	"paylink/pkg/config"
)

type IMailService interface {
	SendPaymentReceipt(to string, inv *db_models.Invoice) error
}

type smtpMailService struct {
	cfg        config.SMTPSettings
	receiptTpl *template.Template
	textTpl    *template.Template
}

func NewSMTPMailService(cfg config.SMTPSettings) (IMailService, error) {
	return &smtpMailService{
		cfg:        cfg,
		receiptTpl: template.Must(template.New("receiptHTML").Parse(receiptHTMLTemplate)),
		textTpl:    template.Must(template.New("receiptText").Parse(receiptTextTemplate)),
	}, nil
}

type receiptEmailData struct {
	ClientName string
	Slug       string
	Total      string
	Currency   string
	Method     string
	PaidAt     string
	Services   []db_models.Service
	Year       int
}

const receiptHTMLTemplate = `<!doctype html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1f2937;margin:0;padding:24px;">
  <div style="max-width:560px;margin:0 auto;border:1px solid #e5e7eb;border-radius:8px;padding:24px;">
    <h1 style="font-size:20px;margin:0 0 12px;">Payment received</h1>
    <p>Hi {{.ClientName}},</p>
    <p>We received your payment for invoice <strong>{{.Slug}}</strong>.</p>
    <table style="width:100%;border-collapse:collapse;margin:16px 0;">
      {{range .Services}}
      <tr>
        <td style="padding:6px 0;border-bottom:1px solid #f3f4f6;">{{.Description}}</td>
        <td style="padding:6px 0;border-bottom:1px solid #f3f4f6;text-align:right;">{{.Amount}}</td>
      </tr>
      {{end}}
      <tr>
        <td style="padding:8px 0;font-weight:bold;">Total</td>
        <td style="padding:8px 0;font-weight:bold;text-align:right;">{{.Total}} {{.Currency}}</td>
      </tr>
    </table>
    <p style="color:#6b7280;font-size:13px;">Paid via {{.Method}} on {{.PaidAt}}.</p>
    <p style="color:#9ca3af;font-size:12px;margin-top:24px;">© {{.Year}}</p>
  </div>
</body>
</html>`

const receiptTextTemplate = `Payment received

Hi {{.ClientName}},

We received your payment for invoice {{.Slug}}.
Total: {{.Total}} {{.Currency}}
Paid via {{.Method}} on {{.PaidAt}}.
`

func (s *smtpMailService) SendPaymentReceipt(to string, inv *db_models.Invoice) error {
	method := "card"
	if inv.PaymentMethod != nil {
		method = *inv.PaymentMethod
	}
	paidAt := ""
	if inv.PaidAt != nil {
		paidAt = inv.PaidAt.Format("January 2, 2006")
	}

	data := receiptEmailData{
		ClientName: inv.Client.Name,
		Slug:       inv.Slug,
		Total:      inv.Total.StringFixed(2),
		Currency:   inv.Currency,
		Method:     method,
		PaidAt:     paidAt,
		Services:   inv.Services,
		Year:       time.Now().Year(),
	}

	var hb, tb bytes.Buffer
	if err := s.receiptTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}

	subject := fmt.Sprintf("Payment received for invoice %s", inv.Slug)
	return s.send(to, subject, hb.String(), tb.String())
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	// STARTTLS path, typically port 587
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) fromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", name, s.cfg.From)
}
