package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "loanchain-web/internal/adapter/http"
	mw "loanchain-web/internal/adapter/middleware"
	mysqlrepo "loanchain-web/internal/adapter/repository/mysql"
	redisrepo "loanchain-web/internal/adapter/repository/redis"
	"loanchain-web/internal/adapter/view"
	"loanchain-web/internal/config"
	"loanchain-web/internal/domain/user"
	"loanchain-web/internal/infrastructure/cache"
	"loanchain-web/internal/infrastructure/chain"
	"loanchain-web/internal/infrastructure/db"
	"loanchain-web/internal/usecase/action"
	"loanchain-web/internal/usecase/connector"
	"loanchain-web/internal/usecase/dashboard"
	"loanchain-web/internal/usecase/session"
	"loanchain-web/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	kv := redisrepo.NewKV(rdb)

	gdb, err := openUsers(cfg)
	if err != nil {
		log.Fatalf("users db: %v", err)
	}
	if err := gdb.AutoMigrate(&user.User{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	users := mysqlrepo.NewUserRepository(gdb)
	seed, err := session.DefaultUsers()
	if err != nil {
		log.Fatal(err)
	}
	if err := users.Seed(context.Background(), seed); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	provider, err := chain.Open(cfg.WalletKeys)
	if err != nil {
		log.Fatalf("wallet: %v", err)
	}
	if provider == nil {
		log.Printf("no WALLET_KEYS configured, wallet features disabled")
	}
	conn := connector.New(provider, kv, cfg.Network(), cfg.Contract())

	sessions := session.NewUsecase(kv, users, mysqlrepo.NewGormUoW(gdb), conn)
	actions := action.NewUsecase(cfg.Location())
	dash := dashboard.NewUsecase(cfg.Location())

	renderer, err := view.NewRenderer(web.FS)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(mw.ClientID(), mw.Connection(conn))
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	// routes
	httpadp.Mount(e, httpadp.Handlers{
		Health:    httpadp.NewHandler(conn),
		Pages:     httpadp.NewPageHandler(sessions, conn, actions, dash, kv),
		Auth:      httpadp.NewAuthHandler(sessions),
		Wallet:    httpadp.NewWalletHandler(conn, actions, kv),
		Actions:   httpadp.NewActionHandler(actions),
		Dashboard: httpadp.NewDashboardHandler(dash),
	}, mw.BusyLock(rdb, cfg.BusyTTL()))

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s (chain %d, contract %s)", addr, cfg.ChainID, cfg.ContractAddress)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func openUsers(cfg *config.Config) (*gorm.DB, error) {
	if cfg.UsersDriver == config.DriverMySQL {
		return db.OpenGorm(cfg.MySQLDSN())
	}
	return db.OpenSQLite(cfg.UsersSQLiteDSN)
}
