// Command admin bootstraps administrator accounts from the shell.
//
//	admin create-admin -username boss -password secret
//	admin list-admins
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rp-market/internal/core/auth"
	"rp-market/internal/core/config"
	"rp-market/internal/core/database"
	"rp-market/internal/core/logger"
	"rp-market/internal/repo"
	"rp-market/internal/service"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <create-admin|list-admins> [flags]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                log,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	jwter := &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, TTL: cfg.JWT.TTL()}
	svc := service.NewAuthService(repo.NewUserRepo(db), jwter, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "create-admin":
		fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
		username := fs.String("username", "", "admin username")
		password := fs.String("password", "", "admin password")
		_ = fs.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fs.Usage()
			os.Exit(2)
		}
		u, created, err := svc.EnsureAdmin(ctx, *username, *password)
		if err != nil {
			log.Fatal("create admin", zap.Error(err))
		}
		if created {
			fmt.Printf("created admin %s (%s)\n", u.Username, u.ID)
		} else {
			fmt.Printf("promoted %s (%s) to admin\n", u.Username, u.ID)
		}
	case "list-admins":
		admins, err := svc.ListAdmins(ctx)
		if err != nil {
			log.Fatal("list admins", zap.Error(err))
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUSERNAME\tCREATED")
		for _, u := range admins {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Username, u.CreatedAt.Format(time.RFC3339))
		}
		_ = tw.Flush()
	default:
		usage()
	}
}
