package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/models"
)

const minPasswordLength = 8

// runInit creates or updates the administrator account interactively. The
// Default category is guaranteed by the schema migration that already ran.
func runInit(db database.Database) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username must not be empty")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password confirmation: %w", err)
	}
	if !bytes.Equal(password, confirm) {
		return errors.New("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	admins := db.AdminRepo()
	admin, err := admins.First()
	switch {
	case err == nil:
		fmt.Println("The administrator already exists, updating credentials...")
		admin.Username = username
		admin.PasswordHash = string(hash)
		if err := admins.Save(admin); err != nil {
			return fmt.Errorf("updating administrator: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		fmt.Println("Creating the administrator account...")
		admin = &models.Admin{
			Username:     username,
			PasswordHash: string(hash),
			Name:         "Admin",
			BlogTitle:    "Inkwell",
			BlogSubTitle: "A personal blog",
			About:        "Anything about you.",
		}
		if err := admins.Add(admin); err != nil {
			return fmt.Errorf("creating administrator: %w", err)
		}
	default:
		return fmt.Errorf("looking up administrator: %w", err)
	}

	fmt.Println("Done.")
	return nil
}
