package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adoptionsports "github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
	assistantports "github.com/pethaven/pethaven-api/internal/domains/assistant/ports"
	catalogports "github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	ordersports "github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	petsports "github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	usersports "github.com/pethaven/pethaven-api/internal/domains/users/ports"
)

// Services bundles the application services the router exposes.
type Services struct {
	Pets      petsports.Service
	Adoptions adoptionsports.Service
	Products  catalogports.ProductService
	Cart      catalogports.CartService
	Orders    ordersports.Service
	Users     usersports.Service
	Assistant assistantports.Service
}

// NewRouter wires every route group with CORS, tracing, and auth middleware.
func NewRouter(services Services, jwtSecret []byte, serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pets := petsHandler{svc: services.Pets}
	adoptions := adoptionsHandler{svc: services.Adoptions}
	products := productsHandler{svc: services.Products}
	cart := cartHandler{svc: services.Cart}
	orders := ordersHandler{svc: services.Orders}
	users := usersHandler{svc: services.Users}
	assistant := assistantHandler{svc: services.Assistant}

	api := router.Group("/api")

	// Public catalog and listing reads.
	api.GET("/products", products.listActive)
	api.GET("/products/:id", products.get)
	api.GET("/categories", products.listCategories)
	api.GET("/pets", pets.list)
	api.GET("/pets/:id", pets.get)
	api.POST("/users", users.register)

	authed := api.Group("", authRequired(jwtSecret))
	{
		authed.POST("/pets", pets.create)
		authed.PUT("/pets/:id", pets.update)
		authed.DELETE("/pets/:id", pets.remove)
		authed.POST("/pets/:id/photos", pets.uploadPhoto)

		authed.POST("/adoption-requests", adoptions.create)
		authed.GET("/adoption-requests/my", adoptions.listMine)
		authed.GET("/adoption-requests/received", adoptions.listReceived)
		authed.GET("/adoption-requests/pet/:petId", adoptions.listByPet)
		authed.GET("/adoption-requests/:id", adoptions.get)
		authed.PUT("/adoption-requests/:id/approve", adoptions.approve)
		authed.PUT("/adoption-requests/:id/reject", adoptions.reject)
		authed.PUT("/adoption-requests/:id/adopted", adoptions.markAdopted)
		authed.PUT("/adoption-requests/:id/cancel", adoptions.cancel)
		authed.PUT("/adoption-requests/:id/withdraw", adoptions.withdraw)
		authed.DELETE("/adoption-requests/:id", adoptions.remove)

		authed.GET("/cart", cart.items)
		authed.POST("/cart", cart.add)
		authed.PUT("/cart/:lineId", cart.updateQuantity)
		authed.DELETE("/cart/:lineId", cart.remove)
		authed.DELETE("/cart", cart.clear)
		authed.GET("/cart/count", cart.count)
		authed.GET("/cart/summary", cart.summary)

		authed.POST("/orders/cod", orders.checkoutCOD)
		authed.POST("/orders", orders.checkoutGateway)
		authed.POST("/orders/confirm-payment", orders.confirmPayment)
		authed.PUT("/orders/:id/cancel", orders.cancel)
		authed.GET("/orders/:id", orders.get)
		authed.GET("/orders", orders.listMine)

		authed.GET("/users/me", users.me)
		authed.PUT("/users/me", users.updateMe)

		authed.POST("/assistant/chat", assistant.chat)
	}

	admin := authed.Group("/admin", adminRequired())
	{
		admin.GET("/products", products.listAll)
		admin.POST("/products", products.create)
		admin.PUT("/products/:id", products.update)
		admin.DELETE("/products/:id", products.remove)
		admin.POST("/categories", products.createCategory)

		admin.GET("/orders", orders.listAll)
		admin.PUT("/orders/:id/status", orders.updateStatus)
		admin.PUT("/orders/:id/delivered", orders.markDelivered)

		admin.GET("/adoption-requests", adoptions.listAll)
		admin.GET("/adoption-requests/stats", adoptions.stats)

		admin.GET("/users", users.list)
		admin.PUT("/users/:id/role", users.setRole)
		admin.PUT("/users/:id/deactivate", users.deactivate)
		admin.DELETE("/users/:id", users.remove)
	}

	return router
}
