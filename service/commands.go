package service

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"yatube/app/config"
	"yatube/app/models"
	"yatube/app/services"

	"github.com/dgraph-io/badger/v4"
)

// HandleDBCommand handles db subcommands and returns an exit code.
func HandleDBCommand(args []string) int {
	if len(args) < 1 {
		printDBHelp()
		osExit(1)
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "clean":
		return withBadgerPath(args[1:], clean)
	case "init":
		return withBadgerPath(args[1:], initDb)
	case "backup":
		return withBadgerPath(args[1:], backup)
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			osExit(1)
			return 1
		}
		backupFile := args[1]
		return withBadgerPath(args[2:], func(dbPath string) int {
			return restore(dbPath, backupFile)
		})
	case "help":
		printDBHelp()
		return 0
	default:
		fmt.Printf("Unknown db command: %s\n\n", cmd)
		printDBHelp()
		osExit(1)
		return 1
	}
}

// printDBHelp prints help for db subcommands.
func printDBHelp() {
	helpText := `Usage: yatube db <command> [-badger-path <dir>] [-c config.yaml]

Commands:
  init                            Initialize a new empty database
  clean                           Remove the database
  backup                          Create a backup of the database
  restore <file>                  Restore database from backup
  help                            Display this help message
`
	fmt.Println(helpText)
}

// withBadgerPath resolves the Badger directory from the config and flags.
func withBadgerPath(args []string, fn func(dbPath string) int) int {
	cfg, err := config.Load("db", args, os.Stdout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 2
	}
	if cfg.Storage != config.StorageBadger {
		fmt.Println("Error: db commands only work with badger storage")
		return 1
	}
	return fn(cfg.BadgerPath)
}

// clean removes the database.
func clean(dbPath string) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(dbPath); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database.
func initDb(dbPath string) int {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 0
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer db.Close()

	fmt.Println("Database initialized successfully")
	return 0
}

// backup writes a full backup next to the database, under backups/.
func backup(dbPath string) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	backupDir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the database with the contents of backupFile.
func restore(dbPath, backupFile string) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err == nil && fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(dbPath); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}

// HandleUserCommand handles user subcommands and returns an exit code.
func HandleUserCommand(args []string) int {
	if len(args) < 1 || args[0] != "create" {
		fmt.Println("Usage: yatube user create -username <name> -password <password> [storage flags]")
		osExit(1)
		return 1
	}

	var username, password string
	cfg, err := config.Load("user create", args[1:], os.Stdout, func(fs *flag.FlagSet) {
		fs.StringVar(&username, "username", "", "login name")
		fs.StringVar(&password, "password", "", "password")
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 2
	}

	return withStore(cfg, func(ctx context.Context, b *backend) error {
		user, err := services.NewUserService(b.store).Create(ctx, username, password)
		if err != nil {
			return err
		}
		fmt.Printf("User %s created with id %d\n", user.Username, user.ID)
		return nil
	})
}

// HandleGroupCommand handles group subcommands and returns an exit code.
func HandleGroupCommand(args []string) int {
	if len(args) < 1 || args[0] != "create" {
		fmt.Println("Usage: yatube group create -title <title> -slug <slug> [-description <text>] [storage flags]")
		osExit(1)
		return 1
	}

	group := &models.Group{}
	cfg, err := config.Load("group create", args[1:], os.Stdout, func(fs *flag.FlagSet) {
		fs.StringVar(&group.Title, "title", "", "group title")
		fs.StringVar(&group.Slug, "slug", "", "unique URL slug")
		fs.StringVar(&group.Description, "description", "", "group description")
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 2
	}
	if group.Description == "" {
		group.Description = group.Title
	}

	return withStore(cfg, func(ctx context.Context, b *backend) error {
		if err := services.NewGroupService(b.store).Create(ctx, group); err != nil {
			return err
		}
		fmt.Printf("Group %s created with id %d\n", group.Slug, group.ID)
		return nil
	})
}

// withStore opens the configured backend for the duration of fn.
func withStore(cfg *config.Config, fn func(ctx context.Context, b *backend) error) int {
	ctx := context.Background()
	b, err := openBackend(ctx, cfg)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		return 1
	}
	defer b.Close()

	if err := fn(ctx, b); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}
