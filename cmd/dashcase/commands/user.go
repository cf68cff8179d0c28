package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/utils"
	"github.com/spf13/cobra"
)

func NewUserCommand() *cobra.Command {
	user := cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	user.AddCommand(newCreateAdminCommand())
	user.AddCommand(newListUsersCommand())
	return &user
}

func newCreateAdminCommand() *cobra.Command {
	createAdmin := cobra.Command{
		Use:   "create-admin",
		Short: "Create an active admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dtos.UserCreateRequest{Role: models.UserRoleAdmin, Status: models.UserStatusActive}
			req.Email, _ = cmd.Flags().GetString("email")
			req.Password, _ = cmd.Flags().GetString("password")
			req.FirstName, _ = cmd.Flags().GetString("first-name")
			req.LastName, _ = cmd.Flags().GetString("last-name")
			if err := shared.V.Struct(req); err != nil {
				return fmt.Errorf("invalid admin: %w", err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pool, db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := migrateIfEnabled(cfg, db); err != nil {
				return err
			}

			var userService shared.UserService
			if err := withServices(cfg, pool, db, &userService); err != nil {
				return err
			}

			created, err := userService.Create(req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", created.Email, created.ID)
			return nil
		},
	}

	createAdmin.Flags().String("email", "", "email of the admin")
	createAdmin.Flags().String("password", "", "password of the admin (at least 6 characters)")
	createAdmin.Flags().String("first-name", "Admin", "first name of the admin")
	createAdmin.Flags().String("last-name", "DashCase", "last name of the admin")
	createAdmin.MarkFlagRequired("email")    // nolint:errcheck
	createAdmin.MarkFlagRequired("password") // nolint:errcheck
	return &createAdmin
}

func newListUsersCommand() *cobra.Command {
	list := cobra.Command{
		Use:   "list",
		Short: "Print all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pool, db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			var userRepository shared.UserRepository
			if err := withServices(cfg, pool, db, &userRepository); err != nil {
				return err
			}
			users, err := userRepository.All()
			if err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}
	return &list
}

func printUsers(w io.Writer, users []models.User) {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"ID", "Email", "Name", "Role", "Status", "Created"})
	tw.AppendRows(utils.Map(
		users,
		func(u models.User) table.Row {
			return table.Row{u.ID, u.Email, u.FirstName + " " + u.LastName, u.Role, u.Status, u.CreatedAt.Format("2006-01-02")}
		},
	))
	fmt.Fprintln(w, tw.Render())
}
