package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/errs"
	"github.com/calebdws/inkwell/models"
)

func newContentFixture(t *testing.T) (*ContentService, database.Database) {
	t.Helper()

	d := newTestDB(t)
	svc := NewContentService(d.PostRepo(), d.CategoryRepo(), d.LinkRepo(), d.AdminRepo())
	return svc, d
}

func TestCreatePost(t *testing.T) {
	svc, d := newContentFixture(t)

	tech := &models.Category{Name: "Tech"}
	require.NoError(t, d.CategoryRepo().Add(tech))

	post, err := svc.CreatePost(PostInput{
		Title:       "Hello",
		Body:        "World",
		CategoryIDs: []uint{tech.ID},
	})
	require.NoError(t, err)

	assert.True(t, post.CanComment)
	assert.False(t, post.Private)
	assert.WithinDuration(t, time.Now().UTC(), post.Timestamp, 5*time.Second)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, tech.ID, post.Categories[0].ID)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _ := newContentFixture(t)

	_, err := svc.CreatePost(PostInput{Body: "World"})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.CreatePost(PostInput{Title: "Hello"})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.CreatePost(PostInput{Title: "Hello", Body: "World", CategoryIDs: []uint{999}})
	assert.True(t, errs.IsNotFound(err))
}

func TestUpdatePostReplacesEverything(t *testing.T) {
	svc, d := newContentFixture(t)

	tech := &models.Category{Name: "Tech"}
	life := &models.Category{Name: "Life"}
	require.NoError(t, d.CategoryRepo().Add(tech))
	require.NoError(t, d.CategoryRepo().Add(life))

	post, err := svc.CreatePost(PostInput{Title: "Hello", Body: "World", CategoryIDs: []uint{tech.ID}})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(post.ID, PostInput{
		Title:       "Hello again",
		Body:        "New body",
		Private:     true,
		CategoryIDs: []uint{life.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "New body", updated.Body)
	assert.True(t, updated.Private)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, life.ID, updated.Categories[0].ID)
}

func TestToggleComments(t *testing.T) {
	svc, _ := newContentFixture(t)

	post, err := svc.CreatePost(PostInput{Title: "Hello", Body: "World"})
	require.NoError(t, err)

	open, err := svc.ToggleComments(post.ID)
	require.NoError(t, err)
	assert.False(t, open)

	open, err = svc.ToggleComments(post.ID)
	require.NoError(t, err)
	assert.True(t, open)
}

func TestRewriteTimestamp(t *testing.T) {
	svc, d := newContentFixture(t)

	post, err := svc.CreatePost(PostInput{Title: "Hello", Body: "World"})
	require.NoError(t, err)

	// Wall-clock 10:00 at UTC+8 is 02:00 UTC.
	utc, err := svc.RewriteTimestamp(post.ID, "2020-01-01T10:00", 8)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 2, 0, 0, 0, time.UTC), utc)

	got, err := d.PostRepo().FindByID(post.ID)
	require.NoError(t, err)
	assert.True(t, got.Timestamp.Equal(utc))

	// Negative offsets move the other way.
	utc, err = svc.RewriteTimestamp(post.ID, "2020-01-01T10:00", -5)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 15, 0, 0, 0, time.UTC), utc)

	_, err = svc.RewriteTimestamp(post.ID, "01/01/2020", 0)
	assert.True(t, errs.IsValidation(err))
}

func TestGetPostVisibility(t *testing.T) {
	svc, _ := newContentFixture(t)

	post, err := svc.CreatePost(PostInput{Title: "Secret", Body: "...", Private: true})
	require.NoError(t, err)

	_, err = svc.GetPost(post.ID, false)
	assert.True(t, errs.IsNotAllowed(err))

	got, err := svc.GetPost(post.ID, true)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestListPostsIncludesPrivate(t *testing.T) {
	svc, _ := newContentFixture(t)

	_, err := svc.CreatePost(PostInput{Title: "Public", Body: "..."})
	require.NoError(t, err)
	_, err = svc.CreatePost(PostInput{Title: "Secret", Body: "...", Private: true})
	require.NoError(t, err)

	_, total, err := svc.ListPosts(1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _ := newContentFixture(t)

	category, err := svc.CreateCategory("Tech")
	require.NoError(t, err)

	_, err = svc.CreateCategory("Tech")
	assert.True(t, errs.IsConflict(err))

	_, err = svc.CreateCategory("")
	assert.True(t, errs.IsValidation(err))

	require.NoError(t, svc.RenameCategory(category.ID, "Technology"))

	err = svc.RenameCategory(models.DefaultCategoryID, "Other")
	assert.True(t, errs.IsProtectedEntity(err))

	err = svc.DeleteCategory(models.DefaultCategoryID)
	assert.True(t, errs.IsProtectedEntity(err))

	require.NoError(t, svc.DeleteCategory(category.ID))
	err = svc.DeleteCategory(category.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestListCategoryPostsUnknownCategory(t *testing.T) {
	svc, _ := newContentFixture(t)

	_, _, err := svc.ListCategoryPosts(999, 1, 10)
	assert.True(t, errs.IsNotFound(err))
}

func TestLinkLifecycle(t *testing.T) {
	svc, _ := newContentFixture(t)

	link, err := svc.CreateLink(LinkInput{Name: "GitHub", URL: "https://github.com"})
	require.NoError(t, err)

	_, err = svc.CreateLink(LinkInput{Name: "Bad", URL: "not-a-url"})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.CreateLink(LinkInput{URL: "https://example.com"})
	assert.True(t, errs.IsValidation(err))

	updated, err := svc.UpdateLink(link.ID, LinkInput{Name: "GitLab", URL: "https://gitlab.com"})
	require.NoError(t, err)
	assert.Equal(t, "GitLab", updated.Name)
	assert.Equal(t, "https://gitlab.com", updated.URL)

	require.NoError(t, svc.DeleteLink(link.ID))
	err = svc.DeleteLink(link.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestSettings(t *testing.T) {
	svc, d := newContentFixture(t)

	require.NoError(t, d.AdminRepo().Add(&models.Admin{
		Username:     "admin",
		PasswordHash: "x",
		Name:         "Admin",
		BlogTitle:    "Inkwell",
	}))

	admin, err := svc.UpdateSettings(SettingsInput{
		Name:         "Caleb",
		BlogTitle:    "Caleb's Blog",
		BlogSubTitle: "Notes",
		About:        "About me.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Caleb", admin.Name)

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "Caleb's Blog", got.BlogTitle)
	assert.Equal(t, "About me.", got.About)
}

func TestGetAbout(t *testing.T) {
	svc, d := newContentFixture(t)

	require.NoError(t, d.AdminRepo().Add(&models.Admin{
		Username: "admin", PasswordHash: "x", Name: "Admin", About: "Hi.",
	}))
	_, err := svc.CreateLink(LinkInput{Name: "GitHub", URL: "https://github.com"})
	require.NoError(t, err)

	about, err := svc.GetAbout()
	require.NoError(t, err)
	assert.Equal(t, "Hi.", about.Admin.About)
	// Default plus nothing else has been created.
	require.Len(t, about.Categories, 1)
	assert.Len(t, about.Links, 1)
}

func TestValidURL(t *testing.T) {
	assert.True(t, validURL("https://example.com"))
	assert.True(t, validURL("http://example.com/path"))
	assert.False(t, validURL("ftp://example.com"))
	assert.False(t, validURL("example.com"))
	assert.False(t, validURL(""))
}
