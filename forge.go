package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/models"
)

// runForge fills the database with demo content: an admin account, fake
// categories, posts, comments (including unreviewed ones, admin comments,
// and replies), and a handful of navigation links.
func runForge(db database.Database, args []string) error {
	flags := pflag.NewFlagSet("forge", pflag.ContinueOnError)
	categoryCount := flags.Int("categories", 10, "number of fake categories")
	postCount := flags.Int("posts", 50, "number of fake posts")
	commentCount := flags.Int("comments", 500, "number of fake comments")
	if err := flags.Parse(args); err != nil {
		return err
	}

	faker := gofakeit.New(0)

	if err := forgeAdmin(db, faker); err != nil {
		return fmt.Errorf("forging admin: %w", err)
	}
	categories, err := forgeCategories(db, faker, *categoryCount)
	if err != nil {
		return fmt.Errorf("forging categories: %w", err)
	}
	posts, err := forgePosts(db, faker, categories, *postCount)
	if err != nil {
		return fmt.Errorf("forging posts: %w", err)
	}
	if err := forgeComments(db, faker, posts, *commentCount); err != nil {
		return fmt.Errorf("forging comments: %w", err)
	}
	if err := forgeLinks(db); err != nil {
		return fmt.Errorf("forging links: %w", err)
	}

	fmt.Printf("Done. Forged %d categories, %d posts, %d comments.\n",
		*categoryCount, *postCount, *commentCount)
	return nil
}

func forgeAdmin(db database.Database, faker *gofakeit.Faker) error {
	admins := db.AdminRepo()
	if _, err := admins.First(); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("helloblog"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return admins.Add(&models.Admin{
		Username:     "admin",
		PasswordHash: string(hash),
		Name:         faker.Name(),
		BlogTitle:    "Inkwell",
		BlogSubTitle: "No, I'm the real thing.",
		About:        faker.Paragraph(2, 4, 12, " "),
	})
}

func forgeCategories(db database.Database, faker *gofakeit.Faker, count int) ([]*models.Category, error) {
	repo := db.CategoryRepo()
	for i := 0; i < count; i++ {
		category := &models.Category{Name: faker.Word()}
		// Random words collide; duplicates just get skipped.
		if err := repo.Add(category); err != nil {
			continue
		}
	}
	return repo.FindAll()
}

func forgePosts(db database.Database, faker *gofakeit.Faker, categories []*models.Category, count int) ([]*models.Post, error) {
	repo := db.PostRepo()
	posts := make([]*models.Post, 0, count)
	yearAgo := time.Now().AddDate(-1, 0, 0)

	for i := 0; i < count; i++ {
		picks := rand.Intn(len(categories))/3 + 1
		chosen := make([]*models.Category, 0, picks)
		seen := map[uint]struct{}{}
		for len(chosen) < picks {
			c := categories[rand.Intn(len(categories))]
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}
			chosen = append(chosen, c)
		}

		post := &models.Post{
			Title:      faker.Sentence(6),
			Body:       faker.Paragraph(5, 8, 30, "\n\n"),
			CanComment: true,
			Timestamp:  faker.DateRange(yearAgo, time.Now()).UTC(),
			Categories: chosen,
		}
		if err := repo.Add(post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func forgeComments(db database.Database, faker *gofakeit.Faker, posts []*models.Post, count int) error {
	if len(posts) == 0 {
		return nil
	}
	repo := db.CommentRepo()
	yearAgo := time.Now().AddDate(-1, 0, 0)

	randomComment := func(reviewed, fromAdmin bool) *models.Comment {
		return &models.Comment{
			Author:    faker.Name(),
			Email:     faker.Email(),
			Site:      faker.URL(),
			Body:      faker.Sentence(12),
			FromAdmin: fromAdmin,
			Reviewed:  reviewed,
			Timestamp: faker.DateRange(yearAgo, time.Now()).UTC(),
			PostID:    posts[rand.Intn(len(posts))].ID,
		}
	}

	var created []*models.Comment
	for i := 0; i < count; i++ {
		comment := randomComment(true, false)
		if err := repo.Add(comment); err != nil {
			return err
		}
		created = append(created, comment)
	}

	// A tenth each of unreviewed, admin-authored, and reply comments.
	salt := count / 10
	for i := 0; i < salt; i++ {
		if err := repo.Add(randomComment(false, false)); err != nil {
			return err
		}
		if err := repo.Add(randomComment(true, true)); err != nil {
			return err
		}
	}
	for i := 0; i < salt && len(created) > 0; i++ {
		parent := created[rand.Intn(len(created))]
		reply := randomComment(true, false)
		reply.PostID = parent.PostID
		reply.RepliedID = &parent.ID
		if err := repo.Add(reply); err != nil {
			return err
		}
	}
	return nil
}

func forgeLinks(db database.Database) error {
	repo := db.LinkRepo()
	links := []*models.Link{
		{Name: "Twitter", URL: "https://twitter.com"},
		{Name: "Facebook", URL: "https://facebook.com"},
		{Name: "LinkedIn", URL: "https://linkedin.com"},
		{Name: "GitHub", URL: "https://github.com"},
	}
	for _, link := range links {
		if err := repo.Add(link); err != nil {
			return err
		}
	}
	return nil
}
