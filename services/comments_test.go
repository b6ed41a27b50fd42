package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/errs"
	"github.com/calebdws/inkwell/models"
)

const testContactEmail = "admin@example.com"

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	d := database.New(db)
	require.NoError(t, d.Migrate())
	return d
}

type notification struct {
	kind      NotificationKind
	postID    uint
	recipient string
}

// recordingNotifier captures notification calls instead of sending mail.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (r *recordingNotifier) Notify(kind NotificationKind, post models.Post, recipient string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notification{kind: kind, postID: post.ID, recipient: recipient})
}

func (r *recordingNotifier) all() []notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification(nil), r.calls...)
}

func newCommentFixture(t *testing.T) (*CommentService, database.Database, *recordingNotifier, *models.Post) {
	t.Helper()

	d := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewCommentService(d.PostRepo(), d.CommentRepo(), notifier, testContactEmail)

	post := &models.Post{
		Title: "Hello", Body: "...", CanComment: true,
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, d.PostRepo().Add(post))

	return svc, d, notifier, post
}

func TestSubmitVisitorComment(t *testing.T) {
	svc, _, notifier, post := newCommentFixture(t)

	comment, err := svc.Submit(SubmitCommentInput{
		PostID: post.ID,
		Author: "Alice",
		Email:  "alice@example.com",
		Body:   "Nice post",
	})
	require.NoError(t, err)

	assert.False(t, comment.Reviewed)
	assert.False(t, comment.FromAdmin)
	assert.Nil(t, comment.RepliedID)

	calls := notifier.all()
	require.Len(t, calls, 1)
	assert.Equal(t, NotifyNewComment, calls[0].kind)
	assert.Equal(t, testContactEmail, calls[0].recipient)
	assert.Equal(t, post.ID, calls[0].postID)
}

func TestSubmitAdminComment(t *testing.T) {
	svc, _, notifier, post := newCommentFixture(t)

	comment, err := svc.Submit(SubmitCommentInput{
		PostID:  post.ID,
		Author:  "Admin",
		Email:   testContactEmail,
		Body:    "Thanks",
		AsAdmin: true,
	})
	require.NoError(t, err)

	// Admin comments are published immediately and do not notify anyone.
	assert.True(t, comment.Reviewed)
	assert.True(t, comment.FromAdmin)
	assert.Empty(t, notifier.all())
}

func TestSubmitReplyNotifiesTarget(t *testing.T) {
	svc, _, notifier, post := newCommentFixture(t)

	parent, err := svc.Submit(SubmitCommentInput{
		PostID: post.ID,
		Author: "Alice",
		Email:  "alice@example.com",
		Body:   "Nice post",
	})
	require.NoError(t, err)
	notifier.calls = nil

	reply, err := svc.Submit(SubmitCommentInput{
		PostID:  post.ID,
		Author:  "Bob",
		Email:   "bob@example.com",
		Body:    "Agreed",
		ReplyTo: &parent.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, reply.RepliedID)
	assert.Equal(t, parent.ID, *reply.RepliedID)

	// A visitor reply notifies both the reply target and the blog contact.
	calls := notifier.all()
	require.Len(t, calls, 2)
	assert.Equal(t, NotifyNewReply, calls[0].kind)
	assert.Equal(t, "alice@example.com", calls[0].recipient)
	assert.Equal(t, NotifyNewComment, calls[1].kind)
	assert.Equal(t, testContactEmail, calls[1].recipient)
}

func TestSubmitAdminReplyNotifiesTargetOnly(t *testing.T) {
	svc, _, notifier, post := newCommentFixture(t)

	parent, err := svc.Submit(SubmitCommentInput{
		PostID: post.ID,
		Author: "Alice",
		Email:  "alice@example.com",
		Body:   "Nice post",
	})
	require.NoError(t, err)
	notifier.calls = nil

	_, err = svc.Submit(SubmitCommentInput{
		PostID:  post.ID,
		Author:  "Admin",
		Email:   testContactEmail,
		Body:    "Thank you",
		ReplyTo: &parent.ID,
		AsAdmin: true,
	})
	require.NoError(t, err)

	calls := notifier.all()
	require.Len(t, calls, 1)
	assert.Equal(t, NotifyNewReply, calls[0].kind)
	assert.Equal(t, "alice@example.com", calls[0].recipient)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, notifier, post := newCommentFixture(t)

	cases := []struct {
		name string
		in   SubmitCommentInput
	}{
		{"missing author", SubmitCommentInput{PostID: post.ID, Email: "a@example.com", Body: "hi"}},
		{"missing body", SubmitCommentInput{PostID: post.ID, Author: "A", Email: "a@example.com"}},
		{"missing email", SubmitCommentInput{PostID: post.ID, Author: "A", Body: "hi"}},
		{"bad email", SubmitCommentInput{PostID: post.ID, Author: "A", Email: "not-an-email", Body: "hi"}},
		{"bad site", SubmitCommentInput{PostID: post.ID, Author: "A", Email: "a@example.com", Site: "ftp://x", Body: "hi"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(tc.in)
			assert.True(t, errs.IsValidation(err))
		})
	}
	assert.Empty(t, notifier.all())
}

func TestSubmitOnUnknownPost(t *testing.T) {
	svc, _, _, _ := newCommentFixture(t)

	_, err := svc.Submit(SubmitCommentInput{
		PostID: 999, Author: "A", Email: "a@example.com", Body: "hi",
	})
	assert.True(t, errs.IsNotFound(err))
}

func TestSubmitOnClosedPost(t *testing.T) {
	svc, d, notifier, post := newCommentFixture(t)

	require.NoError(t, d.PostRepo().SetCanComment(post.ID, false))

	_, err := svc.Submit(SubmitCommentInput{
		PostID: post.ID, Author: "A", Email: "a@example.com", Body: "hi",
	})
	assert.True(t, errs.IsNotAllowed(err))
	assert.Empty(t, notifier.all())
}

func TestSubmitReplyToUnknownComment(t *testing.T) {
	svc, _, _, post := newCommentFixture(t)

	missing := uint(999)
	_, err := svc.Submit(SubmitCommentInput{
		PostID: post.ID, Author: "A", Email: "a@example.com", Body: "hi",
		ReplyTo: &missing,
	})
	assert.True(t, errs.IsNotFound(err))
}

func TestModerate(t *testing.T) {
	svc, d, _, post := newCommentFixture(t)

	comment, err := svc.Submit(SubmitCommentInput{
		PostID: post.ID, Author: "A", Email: "a@example.com", Body: "hi",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Moderate(comment.ID, ModerationApprove))
	require.NoError(t, svc.Moderate(comment.ID, ModerationApprove))

	got, err := d.CommentRepo().FindByID(comment.ID)
	require.NoError(t, err)
	assert.True(t, got.Reviewed)

	require.NoError(t, svc.Moderate(comment.ID, ModerationDelete))
	err = svc.Moderate(comment.ID, ModerationApprove)
	assert.True(t, errs.IsNotFound(err))
}

func TestListVisibleRequiresPost(t *testing.T) {
	svc, _, _, post := newCommentFixture(t)

	_, _, err := svc.ListVisible(999, 1, 10)
	assert.True(t, errs.IsNotFound(err))

	comments, total, err := svc.ListVisible(post.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, comments)
}

func TestCountUnread(t *testing.T) {
	svc, _, _, post := newCommentFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(SubmitCommentInput{
			PostID: post.ID, Author: "A", Email: "a@example.com", Body: "hi",
		})
		require.NoError(t, err)
	}
	comment, err := svc.Submit(SubmitCommentInput{
		PostID: post.ID, Author: "A", Email: "a@example.com", Body: "hi",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Moderate(comment.ID, ModerationApprove))

	unread, err := svc.CountUnread()
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)
}
