package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calebdws/inkwell/models"
)

// NotificationKind identifies the notification templates.
type NotificationKind string

const (
	NotifyNewComment NotificationKind = "new_comment"
	NotifyNewReply   NotificationKind = "new_reply"
)

// Notifier is the notification sink consumed by the comment workflow.
// Implementations must never block the caller and must swallow delivery
// failures; comment creation does not observe the outcome.
type Notifier interface {
	Notify(kind NotificationKind, post models.Post, recipient string)
}

// EmailSender delivers a single email. The production implementation talks
// to the Resend API; tests substitute a recorder.
type EmailSender interface {
	Send(subject, htmlBody string, recipients []string) error
}

type mailJob struct {
	id        uuid.UUID
	kind      NotificationKind
	post      models.Post
	recipient string
}

// Mailer dispatches notification email on a bounded worker pool. Notify
// enqueues and returns immediately; when the queue is full the job is
// dropped with a log line rather than blocking the request.
type Mailer struct {
	logger  zerolog.Logger
	baseURL string
	sender  EmailSender
	jobs    chan mailJob
	wg      sync.WaitGroup
}

func NewMailer(sender EmailSender, baseURL string, queueSize, workers int) *Mailer {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	m := &Mailer{
		logger:  log.With().Str("serviceName", "mailer").Logger(),
		baseURL: baseURL,
		sender:  sender,
		jobs:    make(chan mailJob, queueSize),
	}

	m.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer m.wg.Done()
			for job := range m.jobs {
				m.deliver(job)
			}
		}()
	}

	return m
}

// Notify implements Notifier.
func (m *Mailer) Notify(kind NotificationKind, post models.Post, recipient string) {
	if recipient == "" {
		m.logger.Debug().Str("kind", string(kind)).Msg("no recipient configured, skipping notification")
		return
	}

	job := mailJob{id: uuid.New(), kind: kind, post: post, recipient: recipient}
	select {
	case m.jobs <- job:
	default:
		m.logger.Warn().
			Str("jobId", job.id.String()).
			Str("kind", string(kind)).
			Msg("mail queue full, dropping notification")
	}
}

// Close stops accepting jobs and waits for in-flight deliveries.
func (m *Mailer) Close() {
	close(m.jobs)
	m.wg.Wait()
}

func (m *Mailer) deliver(job mailJob) {
	postURL := fmt.Sprintf("%s/posts/%d#comments", m.baseURL, job.post.ID)

	var subject, body string
	switch job.kind {
	case NotifyNewReply:
		subject = "New reply"
		body = fmt.Sprintf(
			`<p>New reply to a comment on the post <i>%s</i>, click the link below to check:</p>
<p><a href="%s">%s</a></p>
<p><small style="color: #868e96">Do not reply this email directly, it is sent automatically.</small></p>`,
			job.post.Title, postURL, postURL)
	default:
		subject = "New comment"
		body = fmt.Sprintf(
			`<p>New comment on the post <i>%s</i>, click the link below to check:</p>
<p><a href="%s">%s</a></p>
<p><small style="color: #868e96">Do not reply this email directly, it is sent automatically.</small></p>`,
			job.post.Title, postURL, postURL)
	}

	if err := m.sender.Send(subject, body, []string{job.recipient}); err != nil {
		// Best effort: log and move on, the comment is already saved.
		m.logger.Error().
			Err(err).
			Str("jobId", job.id.String()).
			Str("kind", string(job.kind)).
			Msg("failed to deliver notification email")
		return
	}

	m.logger.Info().
		Str("jobId", job.id.String()).
		Str("kind", string(job.kind)).
		Uint("postId", job.post.ID).
		Msg("notification email delivered")
}
