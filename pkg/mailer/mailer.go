package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

var ErrNotConfigured = errors.New("mailer is not configured")

// StudentCredentials is the one-time message carrying a new student's login.
type StudentCredentials struct {
	To        string
	Name      string
	StudentID string
	Password  string
}

// Mailer delivers student credentials. Implementations report delivery
// failure through the returned error; callers decide whether it is fatal.
type Mailer interface {
	SendStudentCredentials(ctx context.Context, msg StudentCredentials) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewSMTPMailer returns a Mailer backed by net/smtp. When cfg is incomplete
// every send fails with ErrNotConfigured.
func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg, send: smtp.SendMail}
}

const credentialsSubject = "Welcome to School Management System - Your Login Credentials"

var credentialsTemplate = template.Must(template.New("credentials").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <h2 style="color: #1e3c72;">Welcome to Our School Management System</h2>
    <p>Dear {{.Name}},</p>
    <p>Your student account has been successfully created. Below are your login credentials:</p>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
      <p style="margin: 10px 0;"><strong>Student ID:</strong> {{.StudentID}}</p>
      <p style="margin: 10px 0;"><strong>Password:</strong> {{.Password}}</p>
    </div>
    <p>Please keep these credentials safe and do not share them with anyone.</p>
    <p>You can now login to view your:</p>
    <ul>
      <li>Class Timetable</li>
      <li>Fee Structure</li>
      <li>Library Card</li>
    </ul>
    <p style="margin-top: 30px;">Best regards,<br>School Administration</p>
  </div>
</div>`))

func (m *smtpMailer) SendStudentCredentials(ctx context.Context, msg StudentCredentials) error {
	if !m.cfg.Enabled() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := buildMessage(m.cfg.From, msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{msg.To}, body); err != nil {
		return fmt.Errorf("failed to send credentials to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg StudentCredentials) ([]byte, error) {
	if strings.ContainsAny(msg.To, "\r\n") {
		return nil, fmt.Errorf("invalid recipient %q", msg.To)
	}

	var html bytes.Buffer
	if err := credentialsTemplate.Execute(&html, msg); err != nil {
		return nil, fmt.Errorf("failed to render credentials email: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + msg.To + "\r\n")
	buf.WriteString("Subject: " + credentialsSubject + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.Write(html.Bytes())

	return buf.Bytes(), nil
}
