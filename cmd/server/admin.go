package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"murim-academy/internal/auth"
	"murim-academy/internal/config"
	"murim-academy/internal/repository/sqlstore"
	"murim-academy/internal/service"
)

var readPasswordFunc = term.ReadPassword // mockable

func createAdminCmd() *cobra.Command {
	var in service.NewUser

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account; the password is prompted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			password, err := promptPassword(cmd.OutOrStdout(), int(os.Stdin.Fd()))
			if err != nil {
				return err
			}
			in.Password = password

			db, err := sqlstore.Setup(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			users := service.NewUserService(
				sqlstore.NewUserRepository(db),
				auth.NewPasswordHasher(cfg.Auth.BcryptCost),
				auth.NewTokenService(cfg.Auth.JWTSecret),
				cfg.Auth.TokenTTL,
			)
			return createAdmin(cmd.Context(), cmd.OutOrStdout(), users, in)
		},
	}

	cmd.Flags().StringVar(&in.FullName, "name", "", "full name of the administrator")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "contact phone")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func promptPassword(out io.Writer, fd int) (string, error) {
	fmt.Fprint(out, "Enter password: ")
	pwd, err := readPasswordFunc(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimSpace(string(pwd))
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}

func createAdmin(ctx context.Context, out io.Writer, users service.UserService, in service.NewUser) error {
	user, err := users.CreateAdmin(ctx, in)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(out, "admin %s created with id %d\n", user.Email, user.ID)
	return nil
}
