package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/database"
	"github.com/yashrajoria/restaurant-service/events"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"github.com/yashrajoria/restaurant-service/services"
	"go.uber.org/zap"
)

var superuser models.RegisterRequest

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create a staff+superuser account",
	Long: `Create an account with both the staff and superuser flags set.

Examples:
  restaurant create-superuser --email admin@example.com --password 'S3cure!pass' \
      --first-name Ada --last-name Admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := models.Migrate(db); err != nil {
			return err
		}

		auth := services.NewAuthService(
			repository.NewGormUserRepository(db),
			services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
			events.NoopPublisher{},
			nil,
			log,
		)

		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		user, err := auth.CreateSuperuser(ctx, &superuser)
		if err != nil {
			return errors.New(apperrors.From(err).JSON())
		}
		log.Info("Superuser created", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
		fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created\n", user.Email)
		return nil
	},
}

func init() {
	f := createSuperuserCmd.Flags()
	f.StringVar(&superuser.Email, "email", "", "Login email")
	f.StringVar(&superuser.Password, "password", "", "Password (validated like registration)")
	f.StringVar(&superuser.FirstName, "first-name", "", "First name")
	f.StringVar(&superuser.LastName, "last-name", "", "Last name")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createSuperuserCmd)
}
