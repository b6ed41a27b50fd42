package services

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebdws/inkwell/models"
)

type sentMail struct {
	subject    string
	body       string
	recipients []string
}

type recordingSender struct {
	mu      sync.Mutex
	sent    []sentMail
	started chan struct{}
	release chan struct{}
}

func (s *recordingSender) Send(subject, body string, recipients []string) error {
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{subject: subject, body: body, recipients: recipients})
	return nil
}

func (s *recordingSender) all() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail(nil), s.sent...)
}

func TestMailerDelivers(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "http://blog.example.com", 8, 2)

	post := models.Post{ID: 42, Title: "Hello"}
	mailer.Notify(NotifyNewComment, post, "admin@example.com")
	mailer.Notify(NotifyNewReply, post, "alice@example.com")
	mailer.Close()

	sent := sender.all()
	require.Len(t, sent, 2)

	subjects := map[string]sentMail{}
	for _, m := range sent {
		subjects[m.subject] = m
	}

	comment, ok := subjects["New comment"]
	require.True(t, ok)
	assert.Equal(t, []string{"admin@example.com"}, comment.recipients)
	assert.Contains(t, comment.body, "http://blog.example.com/posts/42#comments")
	assert.Contains(t, comment.body, "Hello")

	reply, ok := subjects["New reply"]
	require.True(t, ok)
	assert.Equal(t, []string{"alice@example.com"}, reply.recipients)
	assert.Contains(t, reply.body, "http://blog.example.com/posts/42#comments")
}

func TestMailerSkipsEmptyRecipient(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "http://blog.example.com", 8, 1)

	mailer.Notify(NotifyNewComment, models.Post{ID: 1, Title: "Hello"}, "")
	mailer.Close()

	assert.Empty(t, sender.all())
}

func TestMailerDropsWhenQueueIsFull(t *testing.T) {
	sender := &recordingSender{
		started: make(chan struct{}, 3),
		release: make(chan struct{}),
	}
	mailer := NewMailer(sender, "http://blog.example.com", 1, 1)

	post := models.Post{ID: 1, Title: "Hello"}

	// The single worker is now stuck inside Send, leaving the queue empty.
	mailer.Notify(NotifyNewComment, post, "a@example.com")
	<-sender.started

	// Fills the one queue slot.
	mailer.Notify(NotifyNewComment, post, "b@example.com")
	// No room left, dropped.
	mailer.Notify(NotifyNewComment, post, "c@example.com")

	close(sender.release)
	mailer.Close()

	sent := sender.all()
	require.Len(t, sent, 2)
	recipients := sent[0].recipients[0] + " " + sent[1].recipients[0]
	assert.True(t, strings.Contains(recipients, "a@example.com"))
	assert.True(t, strings.Contains(recipients, "b@example.com"))
	assert.False(t, strings.Contains(recipients, "c@example.com"))
}
