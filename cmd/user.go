package cmd

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
	"github.com/vibast-solutions/ms-go-jobtrack/app/repository"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
	"github.com/vibast-solutions/ms-go-jobtrack/config"
)

var createSuperuser bool

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a verified user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := sql.Open("mysql", cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password = strings.TrimSpace(password)
		if password == "" {
			return fmt.Errorf("password must not be empty")
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now()
		user := &entity.User{
			Email:        service.NormalizeEmail(args[0]),
			PasswordHash: string(hashedPassword),
			Verified:     true,
			IsActive:     true,
			IsSuperuser:  createSuperuser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		userRepo := repository.NewUserRepository(db)
		if err := userRepo.Create(context.Background(), user); err != nil {
			if repository.IsDuplicateEntry(err) {
				return fmt.Errorf("user %q already exists", user.Email)
			}
			return err
		}

		fmt.Printf("user_id: %d\n", user.ID)
		fmt.Printf("email: %s\n", user.Email)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().BoolVar(&createSuperuser, "superuser", false, "create the account as a superuser")
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
