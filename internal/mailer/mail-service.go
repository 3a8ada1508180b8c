package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const otpTemplate = `<html>
  <body style="font-family: Arial, sans-serif;">
    <p>Hello {{.FullName}},</p>
    <p>Your verification code is:</p>
    <h2 style="letter-spacing: 4px;">{{.Otp}}</h2>
    <p>Enter it to activate your account. You have 5 attempts before the account is locked.</p>
  </body>
</html>`

type MailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
	fromName string
	subject  string
	tmpl     *template.Template
	log      *zap.SugaredLogger
}

func NewMailService(host, port, user, password, from, fromName, subject string, log *zap.SugaredLogger) *MailService {
	return &MailService{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		fromName: fromName,
		subject:  subject,
		tmpl:     template.Must(template.New("otp").Parse(otpTemplate)),
		log:      log,
	}
}

// SendOtpMail delivers the code to the given address over SMTP.
func (s *MailService) SendOtpMail(to, fullName, otp string) error {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, map[string]string{
		"FullName": fullName,
		"Otp":      otp,
	}); err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.fromName, s.from)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", s.subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	s.log.Infow("sending otp mail", "to", to)
	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}
	s.log.Infow("otp mail sent", "to", to)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole SMTP conversation
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

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

	if err := c.Mail(s.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
