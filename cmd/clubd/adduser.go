package main

import (
	"fmt"
	"time"

	"github.com/clubworks/clubd/internal/auth"
	"github.com/clubworks/clubd/internal/config"
	"github.com/clubworks/clubd/internal/idgen"
	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store/postgres"
	"github.com/clubworks/clubd/internal/ui"
	"github.com/spf13/cobra"
)

// addUserCmd writes directly to the database. New clubs bootstrap their first
// president with it; after that, new members can be added the same way from
// any machine that can reach Postgres.
var addUserCmd = &cobra.Command{
	Use:     "adduser <name>",
	Short:   "Add a member directly to the database",
	GroupID: "system",
	Args:    cobra.ExactArgs(1),
	// Override PersistentPreRunE so we don't build an API client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		email, _ := cmd.Flags().GetString("email")
		roleFlags, _ := cmd.Flags().GetStringSlice("role")
		permFlags, _ := cmd.Flags().GetStringSlice("permission")
		promptSecret, _ := cmd.Flags().GetBool("prompt-secret")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		var roles []model.Role
		perms := make(map[model.Permission]bool)
		for _, r := range roleFlags {
			role := model.Role(r)
			roles = append(roles, role)
			for _, p := range model.DefaultPermissions(role) {
				perms[p] = true
			}
		}
		for _, p := range permFlags {
			perms[model.Permission(p)] = true
		}
		var permissions []model.Permission
		for p := range perms {
			permissions = append(permissions, p)
		}

		var secret string
		if promptSecret {
			secret, err = ui.ReadSecret("Secret: ")
			if err != nil {
				return err
			}
			if secret == "" {
				return fmt.Errorf("secret must not be empty")
			}
		} else {
			secret, err = idgen.NewSecret()
			if err != nil {
				return fmt.Errorf("generating secret: %w", err)
			}
		}

		id, err := idgen.NewUserID()
		if err != nil {
			return fmt.Errorf("generating id: %w", err)
		}

		now := time.Now().UTC()
		user := &model.User{
			ID:          id,
			Name:        name,
			Email:       email,
			Permissions: permissions,
			Roles:       roles,
			SecretHash:  auth.HashSecret(secret),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.Users().Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		fmt.Printf("Created %s (%s)\n", ui.RenderAccent(user.ID), user.Name)
		if !promptSecret {
			// The hash is all that's stored; this is the only time the
			// secret is shown.
			fmt.Printf("Secret: %s\n", secret)
		}
		return nil
	},
}

func init() {
	addUserCmd.Flags().String("email", "", "member email")
	addUserCmd.Flags().StringSlice("role", nil, "display role: member, officer, or president (repeatable)")
	addUserCmd.Flags().StringSlice("permission", nil, "grant a permission (repeatable)")
	addUserCmd.Flags().Bool("prompt-secret", false, "prompt for the secret instead of generating one")
}
