package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/realtime"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

// Options tunes the HTTP surface. Zero values disable the general rate limit, allow
// every origin and use the server's local timezone.
type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// Location decides which calendar day "today" is for past-date checks and listings.
	Location *time.Location
}

func (o Options) clock() func() time.Time {
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

func SetupRouter(db *gorm.DB, hub *realtime.Hub, tokens *utils.TokenManager, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.AllowedOrigins))
	r.Use(middlewares.LoggerMiddleware())
	if opts.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).RateLimit())
	}

	// Repositories and services
	resRepo := repository.NewReservationRepo(db)
	tableRepo := repository.NewTableRepo(db)
	catalog := services.NewCatalogService(
		tableRepo,
		repository.NewMenuRepo(db),
		repository.NewSpecialEventRepo(db),
		repository.NewSettingsRepo(db),
	)
	availability := services.NewAvailabilityService(tableRepo, repository.NewTimeSlotRepo(db), resRepo)
	reservations := services.NewReservationService(resRepo, tableRepo, hub).WithClock(opts.clock())
	waitlist := services.NewWaitlistService(repository.NewWaitlistRepo(db), hub).WithClock(opts.clock())
	users := services.NewUserService(repository.NewUserRepo(db), tokens)

	// Controllers
	reservationCtrl := controllers.NewReservationController(reservations)
	tableCtrl := controllers.NewTableController(availability, catalog)
	waitlistCtrl := controllers.NewWaitlistController(waitlist)
	menuCtrl := controllers.NewMenuController(catalog)
	settingsCtrl := controllers.NewSettingsController(catalog)
	userCtrl := controllers.NewUserController(users)
	wsCtrl := controllers.NewWSController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/ws", wsCtrl.Connect)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", middlewares.NewStrictRateLimiter(), userCtrl.Register)
		auth.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(tokens), userCtrl.Me)
	}
	api.GET("/users/me/reservations", middlewares.AuthMiddleware(tokens), reservationCtrl.MyReservations)

	// Guests may book anonymously; a valid token links the booking to the account.
	res := api.Group("/reservations", middlewares.OptionalAuth(tokens))
	{
		res.POST("", reservationCtrl.CreateReservation)
		res.GET("", reservationCtrl.ListByDate)
		res.GET("/search", reservationCtrl.Search)
		res.GET("/upcoming", reservationCtrl.Upcoming)
		res.GET("/confirm/:code", reservationCtrl.GetByConfirmationCode)
		res.GET("/confirm/:code/qr", reservationCtrl.ConfirmationQR)
		res.GET("/:id", reservationCtrl.GetByID)
		res.GET("/:id/history", reservationCtrl.History)
		res.PATCH("/:id/status", reservationCtrl.UpdateStatus)
	}

	api.GET("/tables/available", tableCtrl.AvailableTables)
	api.GET("/time-slots", tableCtrl.TimeSlots)
	api.GET("/dining-areas", tableCtrl.DiningAreas)
	api.GET("/dining-areas/:id/tables", tableCtrl.AreaTables)

	api.GET("/special-events", settingsCtrl.SpecialEvents)
	api.GET("/special-events/:id", settingsCtrl.SpecialEvent)
	api.GET("/operating-hours", settingsCtrl.OperatingHours)
	api.GET("/settings/:category", settingsCtrl.GetSettings)

	wl := api.Group("/waitlist")
	{
		wl.POST("", waitlistCtrl.AddToWaitlist)
		wl.GET("", waitlistCtrl.CurrentWaitlist)
		wl.PATCH("/:id/status", waitlistCtrl.UpdateStatus)
	}

	menu := api.Group("/menu")
	{
		menu.GET("/categories", menuCtrl.GetCategories)
		menu.GET("/categories/:id/items", menuCtrl.GetItems)
		menu.GET("/featured", menuCtrl.GetFeatured)
	}

	admin := api.Group("/admin", middlewares.AuthMiddleware(tokens), middlewares.RequireStaff())
	{
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:id", tableCtrl.DeleteTable)
		admin.POST("/menu/items", menuCtrl.CreateMenuItem)
		admin.POST("/special-events", settingsCtrl.CreateSpecialEvent)
		admin.PUT("/settings/:category", settingsCtrl.SaveSetting)
	}

	return r
}
