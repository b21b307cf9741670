package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/voyago/travel-backoffice/internal/config"
	"github.com/voyago/travel-backoffice/internal/database"
	"github.com/voyago/travel-backoffice/internal/fx"
	"github.com/voyago/travel-backoffice/internal/handler"
	"github.com/voyago/travel-backoffice/internal/mail"
	"github.com/voyago/travel-backoffice/internal/middleware"
	"github.com/voyago/travel-backoffice/internal/queue"
	"github.com/voyago/travel-backoffice/internal/quote"
	"github.com/voyago/travel-backoffice/internal/repository"
	"github.com/voyago/travel-backoffice/internal/router"
	queue_publisher "github.com/voyago/travel-backoffice/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	limitCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	events := repository.NewEventRepo(db)
	venues := repository.NewVenueRepo(db)
	packages := repository.NewPackageRepo(db)
	tiers := repository.NewTierRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	tickets := repository.NewTicketRepo(db)
	circuits := repository.NewCircuitTransferRepo(db)
	airports := repository.NewAirportTransferRepo(db)
	flights := repository.NewFlightRepo(db)
	lounges := repository.NewLoungePassRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	apiKeys := repository.NewAPIKeyRepo(db)
	contacts := repository.NewSalesContactRepo(db)

	catalog := repository.NewQuoteCatalog(events, packages, hotels, rooms, tickets, circuits, airports, flights, lounges)
	store := quote.NewStore(cfg.QuoteTTL)
	defer store.Close()
	resolver := fx.NewResolver(cfg.FXAPIURL, cfg.FXAPIKey, cfg.FXAskSpread, cfg.FXRateTTL, rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	adminH := &handler.AdminHandler{
		Events:           events,
		Venues:           venues,
		Packages:         packages,
		Tiers:            tiers,
		Hotels:           hotels,
		Rooms:            rooms,
		Tickets:          tickets,
		CircuitTransfers: circuits,
		AirportTransfers: airports,
		Flights:          flights,
		LoungePasses:     lounges,
		RDB:              rdb,
		CachePrefix:      cacheCfg.Prefix,
	}
	accessH := handler.NewAccessHandler(users, apiKeys, contacts)
	quoteH := handler.NewQuoteHandler(store, catalog, resolver)
	bookingH := &handler.BookingHandler{
		Store:         store,
		SalesContacts: contacts,
		Publish:       queue_publisher.PublishBookingRequested,
	}

	limit := middleware.NewTokenBucket(limitCfg, rdb)
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, accessH, cfg.JWTSecret, limit, cache)
	router.RegisterQuote(e, quoteH, bookingH, cfg.JWTSecret, apiKeys, limit)

	emailer := mail.NewEmailer(cfg.MailEndpoint, cfg.MailServiceID, cfg.MailTemplateID, cfg.MailPublicKey)
	go func() {
		if err := queue.StartBookingConsumer(emailer); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
