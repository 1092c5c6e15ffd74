package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/config"
	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/database/couriers"
	"github.com/mrlokans/bookcourier/internal/desk"
	"github.com/mrlokans/bookcourier/internal/entities"
)

// CourierAddCommand provisions a courier account with a password hash.
type CourierAddCommand struct {
	CourierID    string
	Name         string
	SettingsPath string
	DatabasePath string // sqlite file overriding the settings
	Migrate      bool

	prompt desk.CredentialPrompt
}

func NewCourierAddCommand() *CourierAddCommand {
	return &CourierAddCommand{}
}

func (cmd *CourierAddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("courier-add", flag.ExitOnError)

	fs.StringVar(&cmd.CourierID, "id", "", "Numeric courier id (required)")
	fs.StringVar(&cmd.Name, "name", "", "Courier display name")
	fs.StringVar(&cmd.SettingsPath, "settings", config.DefaultSettingsPath, "Path to settings.ini")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Use this sqlite file instead of the configured database")
	fs.BoolVar(&cmd.Migrate, "migrate", false, "Create missing tables before inserting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s courier-add -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a courier account. The password is read from the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s courier-add -id 7 -name \"Olga\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s courier-add -id 7 -db ./bookstore-demo.db -migrate\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CourierID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	if _, err := auth.ParseCourierID(cmd.CourierID); err != nil {
		return fmt.Errorf("courier id must be a positive integer: %q", cmd.CourierID)
	}
	return nil
}

func (cmd *CourierAddCommand) databaseConfig() config.Database {
	cfg := config.NewConfig(cmd.SettingsPath).Database
	if cmd.DatabasePath != "" {
		cfg.Driver = config.DriverSQLite
		cfg.Name = cmd.DatabasePath
	}
	return cfg
}

func (cmd *CourierAddCommand) Run() error {
	conn, err := database.NewConnector(cmd.databaseConfig())
	if err != nil {
		return err
	}
	return cmd.run(context.Background(), conn.Silence())
}

func (cmd *CourierAddCommand) run(ctx context.Context, conn *database.Connector) error {
	fmt.Printf("Database: %s\n", conn.Target())

	if cmd.Migrate {
		if err := conn.Migrate(ctx); err != nil {
			return err
		}
	}

	prompt := cmd.prompt
	if prompt == nil {
		tp := NewTerminalPrompt(cmd.CourierID)
		tp.Confirm = true
		prompt = tp
	}
	_, hash, ok := prompt.Credentials(ctx)
	if !ok {
		return auth.ErrPasswordRequired
	}

	id, err := auth.ParseCourierID(cmd.CourierID)
	if err != nil {
		return err
	}

	repo := couriers.NewRepository(conn)
	if err := repo.CreateCourier(ctx, &entities.Courier{ID: id, Name: cmd.Name, PasswordHash: hash}); err != nil {
		if errors.Is(err, couriers.ErrCourierExists) {
			return fmt.Errorf("courier %d already exists", id)
		}
		return err
	}

	saved, err := repo.GetCourierByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Created courier %d (%s)\n", saved.ID, saved.Name)
	return nil
}
