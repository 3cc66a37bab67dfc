package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	commonmw "github.com/yashrajoria/restaurant-service/common/middleware"
	"github.com/yashrajoria/restaurant-service/controllers"
	"github.com/yashrajoria/restaurant-service/middleware"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Category     *controllers.CategoryController
	Menu         *controllers.MenuController
	Order        *controllers.OrderController
	Reservation  *controllers.ReservationController
	Review       *controllers.ReviewController
	Campaign     *controllers.CampaignController
	Contact      *controllers.ContactController
	Subscription *controllers.SubscriptionController
	Statistics   *controllers.StatisticsController
	Upload       *controllers.UploadController
}

// Credential endpoints allow 10 attempts per minute per IP.
const (
	authPerMinute = 10
	authBurst     = 5
)

func Register(r *gin.Engine, h Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterAccountRoutes(r, h.Auth)
	registerCRUD(r.Group("/categories", middleware.Authorize(middleware.ResourceCategories)), h.Category)
	RegisterMenuRoutes(r, h.Menu)
	registerCRUD(r.Group("/orders", middleware.Authorize(middleware.ResourceOrders)), h.Order)
	RegisterReservationRoutes(r, h.Reservation)
	registerCRUD(r.Group("/reviews", middleware.Authorize(middleware.ResourceReviews)), h.Review)
	registerCRUD(r.Group("/campaigns", middleware.Authorize(middleware.ResourceCampaigns)), h.Campaign)
	registerCRUD(r.Group("/contacts", middleware.Authorize(middleware.ResourceContacts)), h.Contact)

	subs := r.Group("/subscriptions", middleware.Authorize(middleware.ResourceSubscriptions))
	{
		subs.GET("", h.Subscription.List)
		subs.POST("", h.Subscription.Subscribe)
		subs.DELETE("/:id", h.Subscription.Delete)
	}

	r.GET("/statistics/summary", middleware.Authorize(middleware.ResourceStatistics), h.Statistics.Summary)
	r.POST("/uploads/presign", middleware.Authorize(middleware.ResourceUploads), h.Upload.Presign)
}

func RegisterAccountRoutes(r *gin.Engine, ac *controllers.AuthController) {
	accounts := r.Group("/accounts")
	{
		limited := commonmw.RateLimitMiddleware(authPerMinute, authBurst)
		accounts.POST("/registration", limited, ac.Register)
		accounts.POST("/login", limited, ac.Login)
		accounts.POST("/token/refresh", ac.Refresh)

		accounts.GET("/users", middleware.Authorize(middleware.ResourceUsers), ac.ListUsers)

		profile := middleware.Authorize(middleware.ResourceProfile)
		accounts.GET("/profile", profile, ac.GetProfile)
		accounts.PUT("/profile", profile, ac.UpdateProfile)
		accounts.PATCH("/profile", profile, ac.UpdateProfile)
		accounts.POST("/change-password", profile, ac.ChangePassword)
	}
}

func RegisterMenuRoutes(r *gin.Engine, mc *controllers.MenuController) {
	menus := r.Group("/menus", middleware.Authorize(middleware.ResourceMenus))
	menus.GET("/top-rated", mc.TopRated)
	registerCRUD(menus, mc)
}

func RegisterReservationRoutes(r *gin.Engine, rc *controllers.ReservationController) {
	registerCRUD(r.Group("/reservations", middleware.Authorize(middleware.ResourceReservations)), rc)

	actions := r.Group("/reservations/:id", middleware.Authorize(middleware.ResourceReservationActions))
	{
		actions.POST("/cancel", rc.Cancel)
		actions.GET("/qrcode", rc.QRCode)
	}
}

type crudController interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// registerCRUD mounts the standard five routes; PATCH shares the PUT handler.
func registerCRUD(g *gin.RouterGroup, ctrl crudController) {
	g.GET("", ctrl.List)
	g.POST("", ctrl.Create)
	g.GET("/:id", ctrl.Get)
	g.PUT("/:id", ctrl.Update)
	g.PATCH("/:id", ctrl.Update)
	g.DELETE("/:id", ctrl.Delete)
}
