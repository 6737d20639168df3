package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/export"
	"github.com/mamadbah2/autotrade/internal/service/reporting"
	"github.com/mamadbah2/autotrade/pkg/clients/mail"
)

const (
	dateLayout = "2006-01-02"
	jobTimeout = 2 * time.Minute
)

// ReportBuilder builds the reconciliation report for a range.
type ReportBuilder interface {
	BuildReport(ctx context.Context, r models.ReportRange) (*models.Report, error)
}

// SnapshotStore persists the condensed daily figures.
type SnapshotStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Archiver copies the daily figures somewhere the owner can browse them.
type Archiver interface {
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

// TextSender pushes a short text message to a phone number.
type TextSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// Options configures the daily report job.
type Options struct {
	Schedule          string
	Location          *time.Location
	MailFrom          string
	MailTo            []string
	WhatsAppRecipient string
}

// Deps are the collaborators of the daily report job. Archive and WhatsApp are
// optional.
type Deps struct {
	Reports   ReportBuilder
	Snapshots SnapshotStore
	Mailer    mail.Sender
	Archive   Archiver
	WhatsApp  TextSender
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	opts   Options
	deps   Deps
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a new scheduler instance running in opts.Location.
func NewScheduler(opts Options, deps Deps, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(opts.Location)),
		opts:   opts,
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the daily report and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.opts.Schedule, s.runScheduled); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.opts.Schedule, err)
	}

	s.logger.Info("starting scheduler",
		zap.String("schedule", s.opts.Schedule),
		zap.String("timezone", s.opts.Location.String()),
	)
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.RunDailyReport(ctx)
}

// RunDailyReport builds today's report, stores its snapshot and sends it out.
// Each delivery step is attempted even if an earlier one failed; failures are
// logged and never retried.
func (s *Scheduler) RunDailyReport(ctx context.Context) {
	now := s.now().In(s.opts.Location)
	day := reporting.DayRange(now)
	label := day.Start.Format(dateLayout)
	log := s.logger.With(zap.String("day", label))

	log.Info("generating daily report")
	report, err := s.deps.Reports.BuildReport(ctx, day)
	if err != nil {
		log.Error("failed to build daily report", zap.Error(err))
		return
	}

	snapshot := models.NewDailyReport(day.Start, report, now)
	if err := s.deps.Snapshots.SaveDailyReport(ctx, snapshot); err != nil {
		log.Error("failed to save daily report snapshot", zap.Error(err))
	}

	if err := s.mailReport(ctx, report, label); err != nil {
		log.Error("failed to mail daily report", zap.Error(err))
	} else {
		log.Info("daily report mailed", zap.Strings("to", s.opts.MailTo))
	}

	if s.deps.Archive != nil {
		if err := s.deps.Archive.AppendDailyReport(ctx, snapshot); err != nil {
			log.Error("failed to archive daily report", zap.Error(err))
		}
	}

	if s.deps.WhatsApp != nil && s.opts.WhatsAppRecipient != "" {
		if _, err := s.deps.WhatsApp.SendText(ctx, s.opts.WhatsAppRecipient, Summary(label, report)); err != nil {
			log.Error("failed to send daily report summary", zap.Error(err))
		}
	}
}

func (s *Scheduler) mailReport(ctx context.Context, report *models.Report, label string) error {
	title := "Daily report " + label
	doc, err := export.PDF(report, title)
	if err != nil {
		return err
	}

	return s.deps.Mailer.Send(ctx, mail.Message{
		From:    s.opts.MailFrom,
		To:      s.opts.MailTo,
		Subject: title,
		Body:    Summary(label, report),
		Attachments: []mail.Attachment{
			{Name: fmt.Sprintf("report-%s.pdf", label), Data: doc},
		},
	})
}

// Summary renders the headline figures as plain text.
func Summary(label string, report *models.Report) string {
	s := report.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "Daily report %s\n", label)
	fmt.Fprintf(&b, "Sales: %s\n", export.Money(s.Sales))
	fmt.Fprintf(&b, "Cost of goods sold: %s\n", export.Money(s.Purchases))
	fmt.Fprintf(&b, "Expenses: %s\n", export.Money(s.Expenses))
	fmt.Fprintf(&b, "Net profit: %s\n", export.Money(s.Profit))
	fmt.Fprintf(&b, "Products in stock: %d", len(report.Details.Inventory))
	if s.UnmatchedSales > 0 {
		fmt.Fprintf(&b, "\nSales without purchase cost: %d", s.UnmatchedSales)
	}
	return b.String()
}
