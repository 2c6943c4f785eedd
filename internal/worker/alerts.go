package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brokerbook/internal/dto"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// AlertSource produces the dashboard alerts for a point in time.
type AlertSource interface {
	Alerts(ctx context.Context, now time.Time) ([]dto.Alert, error)
}

// Sender delivers a plain-text notification; *infra.Mailer implements it.
type Sender interface {
	Send(to []string, subject, body string) error
}

// AlertScheduler runs the dashboard alert scan on a cron schedule
// (six fields, seconds first), logs whatever it finds and optionally
// mails it.
type AlertScheduler struct {
	cron *cron.Cron
	src  AlertSource
	now  func() time.Time

	mail Sender
	to   []string
}

func NewAlertScheduler(spec string, src AlertSource) (*AlertScheduler, error) {
	s := &AlertScheduler{
		cron: cron.New(cron.WithSeconds()),
		src:  src,
		now:  time.Now,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.Scan(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// MailTo enables alert e-mails. A scan with no alerts sends nothing.
func (s *AlertScheduler) MailTo(sender Sender, to []string) {
	s.mail = sender
	s.to = to
}

func (s *AlertScheduler) Start() {
	s.cron.Start()
	log.Info().Msg("alert_scheduler: started")
}

// Stop halts the schedule and waits for a running scan to finish.
func (s *AlertScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("alert_scheduler: stopped")
}

// Scan evaluates alerts once and logs each at warn level.
func (s *AlertScheduler) Scan(ctx context.Context) []dto.Alert {
	alerts, err := s.src.Alerts(ctx, s.now())
	if err != nil {
		log.Error().Err(err).Msg("alert_scheduler: scan failed")
		return nil
	}
	for _, a := range alerts {
		log.Warn().Str("kind", a.Kind).Int("count", a.Count).Msg(a.Message)
	}
	if s.mail != nil && len(s.to) > 0 && len(alerts) > 0 {
		if err := s.mail.Send(s.to, alertSubject(alerts), alertBody(alerts)); err != nil {
			log.Error().Err(err).Msg("alert_scheduler: failed to mail alerts")
		}
	}
	return alerts
}

func alertSubject(alerts []dto.Alert) string {
	if len(alerts) == 1 {
		return "BrokerBook: " + alerts[0].Message
	}
	return fmt.Sprintf("BrokerBook: %d alerts", len(alerts))
}

func alertBody(alerts []dto.Alert) string {
	var b strings.Builder
	for _, a := range alerts {
		b.WriteString("- ")
		b.WriteString(a.Message)
		b.WriteString("\n")
	}
	return b.String()
}
