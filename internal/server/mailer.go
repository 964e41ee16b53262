package server

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"katachat/health-insight-api/internal/config"
)

type mailTransport interface {
	DialAndSend(messages ...*gomail.Message) error
}

type ReportMailer struct {
	host      string
	port      int
	username  string
	password  string
	log       *logrus.Logger
	transport mailTransport
}

func NewReportMailer(cfg config.Config, log *logrus.Logger) *ReportMailer {
	m := &ReportMailer{
		host:     cfg.SMTPServer,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		log:      log,
	}
	if m.configured() {
		m.transport = gomail.NewDialer(m.host, m.port, m.username, m.password)
	}
	return m
}

func (m *ReportMailer) configured() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

// Send is best-effort; delivery failures are logged, never returned.
func (m *ReportMailer) Send(subject, htmlBody string) {
	if !m.configured() || m.transport == nil {
		m.log.Warn("smtp settings are not fully configured, skipping email")
		return
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.username, "KataChat AI")
	// Reports go to the operator inbox, not the submitter.
	message.SetHeader("To", m.username)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	if err := m.transport.DialAndSend(message); err != nil {
		m.log.WithError(err).WithField("recipient", m.username).Error("failed to send health report email")
		return
	}
	m.log.WithField("recipient", m.username).Info("health report email sent")
}
