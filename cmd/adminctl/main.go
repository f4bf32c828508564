// adminctl manages staff accounts for the admin console.
//
//	adminctl create-user -email staff@example.com -name "Staff" -password secret
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/bunaifromhills/admin-console/internal/config"
	"github.com/bunaifromhills/admin-console/internal/session"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "create-user" {
		fmt.Fprintln(os.Stderr, "usage: adminctl create-user -email <email> -name <name> -password <password>")
		os.Exit(2)
	}

	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	email := fs.String("email", "", "staff email")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "password")
	fs.Parse(os.Args[2:])

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "email and password are required")
		os.Exit(2)
	}

	cfg := config.Load()
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	repo := session.NewPostgresRepository(db)
	user := &session.AdminUser{
		ID:           uuid.New(),
		Email:        *email,
		Name:         *name,
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}
	fmt.Printf("created admin user %s (%s)\n", user.Email, user.ID)
}
