package main

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jtejido/afisnet"
	"github.com/jtejido/afisnet/auth"
	"github.com/jtejido/afisnet/config"
)

func main() {
	if err := config.LoadConfig(os.Getenv("AFIS_CONFIG")); err != nil {
		log.Fatal(err)
	}

	svc, err := afisnet.Open(config.Config)
	if err != nil {
		log.Fatal(err)
	}
	defer svc.Close()

	var creds auth.Credentials
	if config.Config.Auth.Required {
		if creds, err = auth.Load(config.Config.Auth.Credentials); err != nil {
			log.Fatal(err)
		}
	}

	stats, err := svc.Stats()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded %d records, %d network nodes", stats.Records, stats.GraphNodes)

	app := newApp(svc, creds)
	log.Println("Server starting on", config.Config.Server.Listen)
	if err := app.Listen(config.Config.Server.Listen); err != nil {
		log.Println(err)
	}
}

// newApp wires the routes. A nil creds leaves every route open.
func newApp(svc *afisnet.Service, creds auth.Credentials) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(ErrorResponse{
				Error: err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	h := &handlers{svc: svc}
	app.Get("/health", h.health)

	api := app.Group("/")
	if creds != nil {
		api.Use(basicauth.New(basicauth.Config{
			Authorizer: func(user, pass string) bool {
				return svc.Login(user, func() error { return creds.Verify(user, pass) }) == nil
			},
			Unauthorized: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: auth.ErrInvalidCredentials.Error()})
			},
		}))
	}

	api.Post("/identify", h.identify)
	api.Post("/match", h.identify)
	api.Get("/records", h.listRecords)
	api.Post("/records", h.addRecord)
	api.Get("/records/:id", h.getRecord)
	api.Get("/records/:id/network", h.network)
	api.Get("/records/:id/adjacency", h.adjacency)
	api.Get("/records/:id/plot", h.plot)
	api.Get("/history", h.history)

	return app
}
