package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/eventflow/eventflow-api/internal/catalog"
	"github.com/eventflow/eventflow-api/internal/config"
	"github.com/eventflow/eventflow-api/internal/database"
	"github.com/eventflow/eventflow-api/internal/handler"
	"github.com/eventflow/eventflow-api/internal/mailer"
	"github.com/eventflow/eventflow-api/internal/queue"
	"github.com/eventflow/eventflow-api/internal/repository"
	"github.com/eventflow/eventflow-api/internal/router"
	queue_publisher "github.com/eventflow/eventflow-api/internal/service"
	"github.com/eventflow/eventflow-api/internal/service/user"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load() // fatal here if JWT_SECRET or DB config is missing

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables rate limiting and caching
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	users := user.New(repository.NewUserRepo(db), cfg.JWTSecret, cfg.BcryptCost)
	regs := repository.NewRegistrationRepo(db)
	cat := catalog.NewClient(cfg.TicketmasterKey)

	var sender mailer.Sender
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		sender, err = mailer.NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.SenderEmail)
		if err != nil {
			log.Fatalf("mailer: %v", err)
		}
	} else {
		log.Printf("no postmark tokens; writing emails to %s/", cfg.EmailOutDir)
		sender = mailer.NewDevSender(cfg.EmailOutDir)
	}

	// The consumer owns its reconnect loop and runs for the process lifetime.
	go func() {
		if err := queue.StartMailConsumer(sender, cfg.FrontendURL); err != nil {
			log.Printf("mail consumer stopped: %v", err)
		}
	}()

	pub := queue_publisher.AMQP{}
	authHandler := handler.NewAuthHandler(users, pub)
	eventsHandler := handler.NewEventsHandler(cat, users, regs, pub)

	e := echo.New()
	router.RegisterRoutes(e, cfg, authHandler, eventsHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
