package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alloylab/database"
	"github.com/alloylab/dto"
	"github.com/alloylab/services"
	"github.com/alloylab/utils"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account without going through the API",
	Long: `Create an account directly in the database. Use it to bootstrap the
first admin.

When --password is omitted a random password is generated and printed.

Examples:
  alloylab create-user --name admin --admin --director
  alloylab create-user --name ivanov --post "Senior technician" --password s3cret!`,
	RunE: runCreateUser,
}

var newUser struct {
	name     string
	post     string
	password string
	admin    bool
	director bool
	operator bool
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.name, "name", "", "Login name (required)")
	f.StringVar(&newUser.post, "post", "", "Job title")
	f.StringVar(&newUser.password, "password", "", "Password (generated when empty)")
	f.BoolVar(&newUser.admin, "admin", false, "Grant user administration")
	f.BoolVar(&newUser.director, "director", false, "Grant access to analytics")
	f.BoolVar(&newUser.operator, "operator", true, "Allow the user to conduct experiments")
	_ = createUserCmd.MarkFlagRequired("name")
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	conn, err := database.NewDBConnection("primary", withDefaultURL(cfg.Database), log)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Migrate(); err != nil {
		return err
	}

	password := newUser.password
	generated := password == ""
	if generated {
		if password, err = utils.GenerateSecurePassword(16); err != nil {
			return err
		}
	}

	operator := newUser.operator
	user, err := services.NewUserService(conn.DB, log).CreateAccount(cmd.Context(), dto.CreateUserRequest{
		Name:       newUser.name,
		Post:       newUser.post,
		Password:   password,
		IsAdmin:    newUser.admin,
		IsDirector: newUser.director,
		IsOperator: &operator,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created user %q (id %d)\n", user.Name, user.ID)
	if generated {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated password: %s\n", password)
	}
	return nil
}
