package notify

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/SundayYogurt/pim_service/internal/dto"
	"go.uber.org/zap"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

var changeTemplate = template.Must(template.New("change").Parse(`<!doctype html>
<html>
<body style="font-family: sans-serif">
  <h2>{{.Entity}} #{{.EntityID}}</h2>
  <p>Acció <strong>{{.Action}}</strong> feta per l'usuari {{.UserID}}.</p>
  <p>{{.OccurredAt.Format "02/01/2006 15:04:05"}}</p>
</body>
</html>
`))

func RenderChange(event dto.AuditEvent) (string, error) {
	var buf bytes.Buffer
	if err := changeTemplate.Execute(&buf, event); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ChangeSubject(event dto.AuditEvent) string {
	return fmt.Sprintf("[PIM] %s %s #%d", event.Action, event.Entity, event.EntityID)
}

type MailService struct {
	host         string
	port         string
	user         string
	password     string
	mailFrom     string
	mailFromName string
	log          *zap.Logger
}

func NewMailService(host, port, user, password, mailFrom, mailFromName string, log *zap.Logger) *MailService {
	if mailFrom == "" {
		mailFrom = user
	}
	return &MailService{
		host:         host,
		port:         port,
		user:         user,
		password:     password,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
		log:          log,
	}
}

func (s *MailService) Send(to []string, subject, htmlBody string) error {
	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", strings.Join(to, ", ")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	addr := net.JoinHostPort(s.host, s.port)
	s.log.Debug("smtp sending", zap.Strings("to", to), zap.String("via", addr))

	if err := s.sendSMTPWithTimeout(addr, to, []byte(msg)); err != nil {
		return err
	}

	s.log.Info("mail sent", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}

func (s *MailService) sendSMTPWithTimeout(addr string, to []string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	// STARTTLS
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}
	if s.user != "" {
		auth := smtp.PlainAuth("", s.user, s.password, s.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
