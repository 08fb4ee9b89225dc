// Package routes wires controllers, services and repositories onto the
// HTTP router.
package routes

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/rbac"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// RegisterAPI mounts the versioned REST API. feed is the admin live
// order feed hub; its Run loop is started by the caller.
func RegisterAPI(r *router.Router, db *mongo.Database, feed *ws.Hub) {
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	otpRepo := repositories.NewOTPRepository(db)

	authCtl := controllers.NewAuthController(services.NewAuthService(userRepo, otpRepo))
	userCtl := controllers.NewUserController(services.NewUserService(userRepo))
	productCtl := controllers.NewProductController(services.NewProductService(productRepo, categoryRepo))
	categoryCtl := controllers.NewCategoryController(services.NewCategoryService(categoryRepo))
	cartCtl := controllers.NewCartController(services.NewCartService(cartRepo, productRepo))
	orderCtl := controllers.NewOrderController(services.NewOrderService(orderRepo, cartRepo, productRepo, feed), feed)

	admin := rbac.HasRole(string(models.RoleAdmin))
	catalogWrite := rbac.HasRole(string(models.RoleAdmin), string(models.RoleSeller))

	api := r.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", authCtl.Register)
	auth.Post("/login", "auth.login", authCtl.Login)
	auth.Post("/send-otp", "auth.send-otp", authCtl.SendOTP)
	auth.Post("/verify-otp", "auth.verify-otp", authCtl.VerifyOTP)

	// Users
	users := api.Group("/users", middleware.Auth)
	users.Get("/profile", "users.profile", userCtl.Profile)
	users.Put("/profile", "users.profile.update", userCtl.UpdateProfile)
	users.Put("/change-password", "users.change-password", userCtl.ChangePassword)
	users.Get("/profile/{id}", "users.profile.by-id", userCtl.ProfileByID, admin)

	// Products: reads are public, writes need seller or admin.
	api.Get("/products", "products.list", productCtl.List)
	api.Get("/products/{id}", "products.get", productCtl.Get)
	products := api.Group("/products", middleware.Auth)
	products.Post("", "products.create", productCtl.Create, catalogWrite)
	products.Put("/{id}", "products.update", productCtl.Update, catalogWrite)
	products.Delete("/{id}", "products.delete", productCtl.Delete, catalogWrite)
	products.Post("/{id}/images", "products.images.upload", productCtl.UploadImage, catalogWrite)
	products.Post("/{id}/reviews", "products.reviews.create", productCtl.AddReview)

	// Categories: reads are public, writes need admin.
	api.Get("/categories", "categories.list", categoryCtl.List)
	api.Get("/categories/{id}", "categories.get", categoryCtl.Get)
	categories := api.Group("/categories", middleware.Auth, admin)
	categories.Post("", "categories.create", categoryCtl.Create)
	categories.Put("/{id}", "categories.update", categoryCtl.Update)
	categories.Delete("/{id}", "categories.delete", categoryCtl.Delete)

	// Cart
	cart := api.Group("/cart", middleware.Auth)
	cart.Get("", "cart.get", cartCtl.Get)
	cart.Post("/items", "cart.items.add", cartCtl.AddItem)
	cart.Put("/items", "cart.items.update", cartCtl.UpdateItem)
	cart.Delete("/items", "cart.items.remove", cartCtl.RemoveItem)
	cart.Delete("", "cart.clear", cartCtl.Clear)

	// Orders
	orders := api.Group("/orders", middleware.Auth)
	orders.Post("/create", "orders.create", orderCtl.Create)
	orders.Get("/user-orders", "orders.user", orderCtl.ListForUser)
	orders.Get("/admin/orders", "orders.admin.list", orderCtl.ListAll, admin)
	orders.Get("/admin/feed", "orders.admin.feed", orderCtl.Feed, admin)
	orders.Get("/stats/all", "orders.stats", orderCtl.Stats, admin)
	orders.Put("/{id}/status", "orders.status", orderCtl.UpdateStatus, admin)
	orders.Get("/{id}", "orders.get", orderCtl.Get)
}
