package router

import (
	"storefront/constants"
	"storefront/handler"
	"storefront/middleware"
	"storefront/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, jwtSecret string) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")
	protected := middleware.Protected(jwtSecret)

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", protected, h.GetMe)

	coupons := v1.Group("/coupons")
	coupons.Post("/validate", validate.ValidateCoupon(), h.ValidateCoupon)
	coupons.Post("/use", validate.UseCoupon(), h.UseCoupon)

	payment := v1.Group("/payment")
	payment.Post("/create-order", validate.CreatePaymentOrder(), h.CreatePaymentOrder)
	payment.Post("/verify", validate.VerifyPayment(), h.VerifyPayment)
	payment.Get("/:id", protected, h.GetPayment)

	products := v1.Group("/products")
	products.Get("/", validate.ProductFilter(), h.GetProducts)
	products.Get("/:slug", h.GetProductBySlug)

	reviews := v1.Group("/reviews")
	reviews.Get("/", validate.ReviewFilter(), h.GetReviews)
	reviews.Post("/", validate.CreateReview(), h.CreateReview)

	v1.Get("/gallery", validate.GalleryFilter(), h.GetGallery)

	videos := v1.Group("/videos")
	videos.Get("/", validate.VideoFilter(), h.GetVideos)
	videos.Get("/:slug", h.GetVideoBySlug)

	admin := v1.Group("/admin", protected, middleware.RequireRole(constants.ROLES...))

	adminCoupons := admin.Group("/coupons", middleware.RequireRole(constants.ROLE_ADMIN))
	adminCoupons.Get("/", validate.CouponFilter(), h.GetCoupons)
	adminCoupons.Get("/:id", validate.GetById("id"), h.GetCouponById)
	adminCoupons.Get("/:id/qr", validate.GetById("id"), h.GetCouponQR)
	adminCoupons.Post("/", validate.CreateCoupon(), h.CreateCoupon)
	adminCoupons.Put("/:id", validate.GetById("id"), validate.UpdateCoupon(), h.UpdateCoupon)
	adminCoupons.Patch("/:id/toggle", validate.GetById("id"), h.ToggleCoupon)
	adminCoupons.Delete("/:id", validate.GetById("id"), h.DeleteCoupon)

	adminReviews := admin.Group("/reviews")
	adminReviews.Get("/", validate.ReviewFilter(), h.GetAllReviews)
	adminReviews.Patch("/:id/approve", validate.GetById("id"), h.ApproveReview)
	adminReviews.Delete("/:id", validate.GetById("id"), h.DeleteReview)

	adminGallery := admin.Group("/gallery")
	adminGallery.Post("/", validate.CreateGallery(), h.CreateGalleryImage)
	adminGallery.Put("/:id", validate.GetById("id"), validate.UpdateGallery(), h.UpdateGalleryImage)
	adminGallery.Delete("/:id", validate.GetById("id"), h.DeleteGalleryImage)

	adminVideos := admin.Group("/videos")
	adminVideos.Post("/", validate.CreateVideo(), h.CreateVideo)
	adminVideos.Delete("/:id", validate.GetById("id"), h.DeleteVideo)

	upload := admin.Group("/upload")
	upload.Post("/", validate.UploadImage(), h.UploadImage)
	upload.Delete("/", validate.DeleteAsset(), h.DeleteAsset)
}
