package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"campusmarket/internal/api"
	"campusmarket/internal/config"
	"campusmarket/internal/http/handlers"
	applog "campusmarket/internal/log"
	"campusmarket/internal/session"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	tokens, err := session.OpenStore(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer tokens.Close()

	backend := api.NewClient(cfg.BackendURL)
	assistant := api.NewClient(cfg.ChatbotURL)
	sessions := session.NewService(backend, tokens)

	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Algo salió mal. Intenta de nuevo.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Algo salió mal. Intenta de nuevo.")
			}
			return nil
		},
	})
	// Image upload batches need headroom over the default body cap
	app.Server().MaxRequestBodySize = 32 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachUser(sessions))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "La verificación de seguridad falló. Recarga la página."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Routes ----------
	deps := handlers.NewDeps(backend, assistant, sessions)

	app.Get("/", deps.HomeHandler.Home)
	app.Get("/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.SearchHandler.Search)

	app.Get("/product/:id", deps.ProductHandler.Detail)
	app.Post("/contact", deps.ProductHandler.Contact)

	app.Post("/favorites/toggle", deps.FavoriteHandler.Toggle)
	app.Get("/favorites", handlers.RequireUser(), deps.FavoriteHandler.List)

	app.Get("/dashboard", handlers.RequireUser(), deps.DashboardHandler.Dashboard)
	app.Get("/my-products", handlers.RequireUser(), deps.MyProductsHandler.List)
	app.Post("/my-products/delete", handlers.RequireUser(), deps.MyProductsHandler.Delete)

	app.Get("/sell", handlers.RequireUser(), deps.SellHandler.Form)
	app.Post("/sell/upload", handlers.RequireUser(), deps.SellHandler.Upload)
	app.Post("/sell/remove-image", handlers.RequireUser(), deps.SellHandler.RemoveImage)
	app.Post("/sell", handlers.RequireUser(), deps.SellHandler.Create)

	app.Get("/profile", handlers.RequireUser(), deps.ProfileHandler.View)
	app.Post("/profile", handlers.RequireUser(), deps.ProfileHandler.Update)

	app.Get("/chat", deps.ChatHandler.View)
	app.Post("/chat", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.ChatHandler.Send)

	// Auth (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Demasiados intentos. Espera un momento."})
		},
	}), deps.AuthHandler.Login)
	app.Get("/register", deps.AuthHandler.RegisterForm)
	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/logout", deps.AuthHandler.Logout)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Página no encontrada"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
