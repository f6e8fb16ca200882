// Command promote sets a user's role by username. It complements the
// config-driven bootstrap admin: once one superadmin exists, further
// promotions normally happen through this tool.
//
// Usage:
//
//	promote --username=anna [--role=superadmin|user]
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	username := flag.String("username", "", "username whose role to change")
	role := flag.String("role", "superadmin", "target role: superadmin or user")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --username=anna [--role=superadmin|user]")
		os.Exit(1)
	}
	if *role != "superadmin" && *role != "user" {
		log.Fatalf("unknown role %q", *role)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx,
		"UPDATE users SET role = $1 WHERE username = $2 AND role != $1",
		*role, *username,
	)
	if err != nil {
		log.Fatalf("update role: %v", err)
	}

	if tag.RowsAffected() == 0 {
		fmt.Printf("No user found with username %q, or role already %q.\n", *username, *role)
		os.Exit(1)
	}

	fmt.Printf("User %q is now %q.\n", *username, *role)
}
