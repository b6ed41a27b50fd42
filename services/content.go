package services

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/errs"
	"github.com/calebdws/inkwell/models"
)

// timestampLayout is the wire format for the admin timestamp-rewriting tool.
const timestampLayout = "2006-01-02T15:04"

// ContentService owns post, category, and link management plus the public
// read path over them.
type ContentService struct {
	logger     zerolog.Logger
	posts      *database.PostRepo
	categories *database.CategoryRepo
	links      *database.LinkRepo
	admins     *database.AdminRepo
}

func NewContentService(posts *database.PostRepo, categories *database.CategoryRepo, links *database.LinkRepo, admins *database.AdminRepo) *ContentService {
	return &ContentService{
		logger:     log.With().Str("serviceName", "contentService").Logger(),
		posts:      posts,
		categories: categories,
		links:      links,
		admins:     admins,
	}
}

// PostInput carries post creation and full-replace updates. An empty
// CategoryIDs slice is valid: posts with zero categories are allowed.
type PostInput struct {
	Title       string
	Body        string
	Private     bool
	CategoryIDs []uint
}

func (s *ContentService) resolveCategories(ids []uint) ([]*models.Category, error) {
	categories, err := s.categories.FindByIDs(ids)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "categories", err)
	}
	if len(categories) != len(uniqueIDs(ids)) {
		return nil, errs.NewNotFoundError("category")
	}
	return categories, nil
}

// CreatePost creates a post linked to the given categories. Every supplied
// category id must resolve.
func (s *ContentService) CreatePost(in PostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, errs.NewValidationError("title", "title is required")
	}
	if in.Body == "" {
		return nil, errs.NewValidationError("body", "body is required")
	}

	categories, err := s.resolveCategories(in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      in.Title,
		Body:       in.Body,
		Private:    in.Private,
		CanComment: true,
		Timestamp:  time.Now().UTC(),
		Categories: categories,
	}
	if err := s.posts.Add(post); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	return post, nil
}

// UpdatePost fully replaces a post's title, body, private flag, and
// category set.
func (s *ContentService) UpdatePost(postID uint, in PostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, errs.NewValidationError("title", "title is required")
	}
	if in.Body == "" {
		return nil, errs.NewValidationError("body", "body is required")
	}

	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}

	categories, err := s.resolveCategories(in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Body = in.Body
	post.Private = in.Private
	post.Categories = categories
	if err := s.posts.Update(post); err != nil {
		return nil, errs.NewDatabaseError("update", "post", err)
	}
	return s.GetPost(postID, true)
}

// DeletePost removes a post together with its comments and category
// associations.
func (s *ContentService) DeletePost(postID uint) error {
	if err := s.posts.Delete(postID); err != nil {
		return errs.NewDatabaseError("delete", "post", err)
	}
	return nil
}

// ToggleComments flips a post's commenting flag and returns the new value.
func (s *ContentService) ToggleComments(postID uint) (bool, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return false, errs.NewDatabaseError("find", "post", err)
	}
	next := !post.CanComment
	if err := s.posts.SetCanComment(postID, next); err != nil {
		return false, errs.NewDatabaseError("update", "post", err)
	}
	return next, nil
}

// RewriteTimestamp re-dates a post. The supplied wall-clock time is
// interpreted in a timezone offsetHours east of UTC and stored as UTC.
// Arbitrary past and future results are accepted.
func (s *ContentService) RewriteTimestamp(postID uint, localTime string, offsetHours int) (time.Time, error) {
	parsed, err := time.Parse(timestampLayout, localTime)
	if err != nil {
		return time.Time{}, errs.NewValidationError("timestamp", fmt.Sprintf("expected %s format", timestampLayout))
	}
	utc := parsed.Add(-time.Duration(offsetHours) * time.Hour).UTC()

	if _, err := s.posts.FindByID(postID); err != nil {
		return time.Time{}, errs.NewDatabaseError("find", "post", err)
	}
	if err := s.posts.SetTimestamp(postID, utc); err != nil {
		return time.Time{}, errs.NewDatabaseError("update", "post", err)
	}
	return utc, nil
}

// GetPost returns a post for display. Private posts are only served to the
// admin viewer.
func (s *ContentService) GetPost(postID uint, viewerIsAdmin bool) (*models.Post, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if post.Private && !viewerIsAdmin {
		return nil, errs.NewNotAllowedError("this post is private")
	}
	return post, nil
}

// ListPosts returns one page of all posts, newest first. Listings include
// private posts; visibility is enforced when the detail view is fetched.
func (s *ContentService) ListPosts(page, perPage int) ([]*models.Post, int64, error) {
	posts, total, err := s.posts.FindPage(page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "posts", err)
	}
	return posts, total, nil
}

// ListCategoryPosts returns one page of a category's posts, newest first.
func (s *ContentService) ListCategoryPosts(categoryID uint, page, perPage int) ([]*models.Post, int64, error) {
	if _, err := s.categories.FindByID(categoryID); err != nil {
		return nil, 0, errs.NewDatabaseError("find", "category", err)
	}
	posts, total, err := s.posts.FindPageByCategory(categoryID, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "posts", err)
	}
	return posts, total, nil
}

// ListAllPosts returns every post, newest first, for the timestamp tool.
func (s *ContentService) ListAllPosts() ([]*models.Post, error) {
	posts, err := s.posts.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("list", "posts", err)
	}
	return posts, nil
}

// CreateCategory creates a category with a unique name.
func (s *ContentService) CreateCategory(name string) (*models.Category, error) {
	if name == "" {
		return nil, errs.NewValidationError("name", "name is required")
	}
	category := &models.Category{Name: name}
	if err := s.categories.Add(category); err != nil {
		return nil, errs.NewDatabaseError("create", "category", err)
	}
	return category, nil
}

// RenameCategory changes a category's name. The Default category is
// protected.
func (s *ContentService) RenameCategory(categoryID uint, name string) error {
	if name == "" {
		return errs.NewValidationError("name", "name is required")
	}
	if err := s.categories.Rename(categoryID, name); err != nil {
		if errs.IsProtectedEntity(err) {
			return err
		}
		return errs.NewDatabaseError("rename", "category", err)
	}
	return nil
}

// DeleteCategory removes a category; its posts fall back to Default. The
// Default category is protected.
func (s *ContentService) DeleteCategory(categoryID uint) error {
	if err := s.categories.Delete(categoryID); err != nil {
		if errs.IsProtectedEntity(err) {
			return err
		}
		return errs.NewDatabaseError("delete", "category", err)
	}
	return nil
}

// ListCategories returns every category ordered by name.
func (s *ContentService) ListCategories() ([]*models.Category, error) {
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err)
	}
	return categories, nil
}

// LinkInput carries link creation and updates.
type LinkInput struct {
	Name string
	URL  string
}

// CreateLink creates a navigation link after checking the URL is
// well-formed.
func (s *ContentService) CreateLink(in LinkInput) (*models.Link, error) {
	if in.Name == "" {
		return nil, errs.NewValidationError("name", "name is required")
	}
	if !validURL(in.URL) {
		return nil, errs.NewValidationError("url", "not a valid URL")
	}
	link := &models.Link{Name: in.Name, URL: in.URL}
	if err := s.links.Add(link); err != nil {
		return nil, errs.NewDatabaseError("create", "link", err)
	}
	return link, nil
}

// UpdateLink replaces a link's name and URL.
func (s *ContentService) UpdateLink(linkID uint, in LinkInput) (*models.Link, error) {
	if in.Name == "" {
		return nil, errs.NewValidationError("name", "name is required")
	}
	if !validURL(in.URL) {
		return nil, errs.NewValidationError("url", "not a valid URL")
	}
	link, err := s.links.FindByID(linkID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "link", err)
	}
	link.Name = in.Name
	link.URL = in.URL
	if err := s.links.Update(link); err != nil {
		return nil, errs.NewDatabaseError("update", "link", err)
	}
	return link, nil
}

// DeleteLink removes a navigation link.
func (s *ContentService) DeleteLink(linkID uint) error {
	if _, err := s.links.FindByID(linkID); err != nil {
		return errs.NewDatabaseError("find", "link", err)
	}
	if err := s.links.Delete(linkID); err != nil {
		return errs.NewDatabaseError("delete", "link", err)
	}
	return nil
}

// ListLinks returns every navigation link ordered by name.
func (s *ContentService) ListLinks() ([]*models.Link, error) {
	links, err := s.links.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("list", "links", err)
	}
	return links, nil
}

// SettingsInput carries the admin profile and blog presentation settings.
type SettingsInput struct {
	Name         string
	BlogTitle    string
	BlogSubTitle string
	About        string
}

// UpdateSettings persists the admin display name and blog presentation
// fields onto the singleton admin row.
func (s *ContentService) UpdateSettings(in SettingsInput) (*models.Admin, error) {
	if in.Name == "" {
		return nil, errs.NewValidationError("name", "name is required")
	}
	if in.BlogTitle == "" {
		return nil, errs.NewValidationError("blogTitle", "blog title is required")
	}

	admin, err := s.admins.First()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin", err)
	}
	admin.Name = in.Name
	admin.BlogTitle = in.BlogTitle
	admin.BlogSubTitle = in.BlogSubTitle
	admin.About = in.About
	if err := s.admins.Save(admin); err != nil {
		return nil, errs.NewDatabaseError("update", "admin", err)
	}
	return admin, nil
}

// GetSettings returns the singleton admin row backing the settings view.
func (s *ContentService) GetSettings() (*models.Admin, error) {
	admin, err := s.admins.First()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin", err)
	}
	return admin, nil
}

// About bundles what the public about page and navigation need.
type About struct {
	Admin      *models.Admin      `json:"admin"`
	Categories []*models.Category `json:"categories"`
	Links      []*models.Link     `json:"links"`
}

// GetAbout returns the admin profile plus the category and link lists.
func (s *ContentService) GetAbout() (*About, error) {
	admin, err := s.admins.First()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin", err)
	}
	categories, err := s.ListCategories()
	if err != nil {
		return nil, err
	}
	links, err := s.ListLinks()
	if err != nil {
		return nil, err
	}
	return &About{Admin: admin, Categories: categories, Links: links}, nil
}

// validURL accepts absolute http(s) URLs.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
