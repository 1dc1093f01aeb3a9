package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/bot"
	"github.com/Theo524/Simple-User-based-Restaurant-order-system/config"
	"github.com/Theo524/Simple-User-based-Restaurant-order-system/console"
	"github.com/Theo524/Simple-User-based-Restaurant-order-system/db"
	"github.com/Theo524/Simple-User-based-Restaurant-order-system/services"
)

const defaultDemoUsers = 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrate(ctx, cfg)
			return
		case "seed-demo":
			runSeedDemo(cfg, os.Args[2:])
			return
		}
	}

	store, err := services.OpenStore(cfg.Store.UsersFile, cfg.Store.AdminPassword)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store:", err)
		os.Exit(1)
	}

	var orders services.OrderLog = services.NopOrderLog{}
	if cfg.DB.Enabled {
		if err := db.Init(ctx, cfg.DB); err != nil {
			fmt.Fprintln(os.Stderr, "db:", err)
			os.Exit(1)
		}
		defer db.Close()
		if cfg.DB.AutoMigrate {
			if err := applyMigrations(ctx, false); err != nil {
				fmt.Fprintln(os.Stderr, "migrate:", err)
				os.Exit(1)
			}
		}
		orders = services.PgOrderLog{}
	}

	app := services.NewApp(store, services.DefaultCatalog(), orders)

	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg, app)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bot:", err)
			os.Exit(1)
		}
		log.Printf("bot started, users file %s", store.Path())
		b.Start(ctx)
		return
	}

	if err := console.New(app, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, cfg *config.Config) {
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(ctx, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func runSeedDemo(cfg *config.Config, args []string) {
	n := defaultDemoUsers
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			fmt.Fprintln(os.Stderr, "usage: seed-demo [count]")
			os.Exit(2)
		}
		n = v
	}
	store, err := services.OpenStore(cfg.Store.UsersFile, cfg.Store.AdminPassword)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store:", err)
		os.Exit(1)
	}
	users, err := services.SeedDemoUsers(store, n)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed-demo:", err)
		os.Exit(1)
	}
	for _, u := range users {
		fmt.Printf("%s\t%s\t%s\n", u.Username, u.Password, services.FormatMoney(u.Balance))
	}
	fmt.Println("Added", len(users), "users to", store.Path())
}
