// Command bootstrap seeds the first ROOT user. Every later account is
// created through the API by an existing ROOT, so a fresh installation
// needs this one out-of-band step.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ospinae/termledger/internal/cryptox"
	"github.com/ospinae/termledger/internal/dbx"
	"github.com/ospinae/termledger/internal/server/audit"
	"github.com/ospinae/termledger/internal/server/config"
	"github.com/ospinae/termledger/internal/server/models"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func promptCredentials() (string, []byte, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("ROOT username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return "", nil, fmt.Errorf("username must not be empty")
	}

	fmt.Print("ROOT password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", nil, err
	}
	if len(password) == 0 {
		return "", nil, fmt.Errorf("password must not be empty")
	}

	fmt.Print("Repeat password: ")
	repeat, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", nil, err
	}
	if string(password) != string(repeat) {
		return "", nil, fmt.Errorf("passwords do not match")
	}

	return username, password, nil
}

func seedRoot(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, username string, password []byte) (*models.User, error) {
	recorder := audit.NewRecorder(rm)

	var created *models.User

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		existing, err := rm.Users(tx).List(ctx)
		if err != nil {
			return err
		}
		for _, u := range existing {
			if u.Role == models.RoleRoot && u.Active {
				return fmt.Errorf("an active ROOT user already exists (%s)", u.Username)
			}
		}

		salt := cryptox.NewSalt()
		created, err = rm.Users(tx).Create(ctx, &models.User{
			Username:     username,
			PasswordHash: cryptox.HashPassword(password, salt),
			Salt:         salt,
			Role:         models.RoleRoot,
			Active:       true,
		})
		if err != nil {
			return err
		}

		// The first account is its own creator in the audit trail.
		return recorder.Record(ctx, tx, audit.UserCreate, created.ID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func main() {
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	username, password, err := promptCredentials()
	if err != nil {
		log.Fatalf("%v", err)
	}

	user, err := seedRoot(ctx, db, rm, username, password)
	if err != nil {
		log.Fatalf("seeding ROOT user: %v", err)
	}

	fmt.Printf("ROOT user %q created with id %d\n", user.Username, user.ID)
}
