// SPDX-License-Identifier: AGPL-3.0-only
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"syscall"

	"github.com/natterhq/natter/internal/authhelp"
	"github.com/natterhq/natter/internal/database"
	"golang.org/x/term"
)

func HandleResetPassword(dbQueries *database.Queries, email string) {
	ctx := context.Background()

	if email == "" {
		log.Fatal("--email is required")
	}

	user, err := dbQueries.GetUserByEmail(ctx, email)
	if err != nil {
		log.Fatalf("User '%s' not found: %v", email, err)
	}

	fmt.Printf("Enter new password for '%s': ", email)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("\nFailed to read password: %v", err)
	}
	fmt.Println()

	password := string(bytePassword)
	if err := authhelp.ValidatePasswordStrength(password); err != nil {
		log.Fatalf("Password is too weak: %v", err)
	}

	hash, err := authhelp.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	_, err = dbQueries.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{
		ID:           user.ID,
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}

	fmt.Println("Password updated successfully.")
}

func HandleReset2FA(dbQueries *database.Queries, email string) {
	ctx := context.Background()

	if email == "" {
		log.Fatal("--email is required")
	}

	user, err := dbQueries.GetUserByEmail(ctx, email)
	if err != nil {
		log.Fatalf("User '%s' not found: %v", email, err)
	}

	fmt.Printf("Resetting 2FA for user '%s'...\n", email)

	_, err = dbQueries.UpdateUserTOTP(ctx, database.UpdateUserTOTPParams{
		ID:          user.ID,
		TotpSecret:  sql.NullString{},
		TotpEnabled: false,
	})
	if err != nil {
		log.Fatalf("Failed to reset 2FA: %v", err)
	}

	fmt.Printf("2FA successfully disabled for user '%s'\n", email)
}
