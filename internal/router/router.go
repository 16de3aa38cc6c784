package router

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/areeshaabbas/inquiry-service/api"
	"github.com/areeshaabbas/inquiry-service/internal/auth"
	"github.com/areeshaabbas/inquiry-service/internal/handler"
	"github.com/areeshaabbas/inquiry-service/internal/metrics"
	"github.com/areeshaabbas/inquiry-service/internal/ratelimit"
)

// Deps — зависимости маршрутизатора.
type Deps struct {
	Inquiry   *handler.InquiryHandler
	Admin     *handler.AdminHandler
	Limiter   ratelimit.Limiter
	JWTSecret string
}

func New(deps Deps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors())
	r.Use(metrics.GinMiddleware())

	r.GET("/health", gin.WrapF(handler.Health))
	r.GET("/ready", gin.WrapF(handler.Ready))
	r.GET("/metrics", metrics.Handler())

	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/") })
	r.GET("/swagger/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = "/swagger/index.html"
			c.Request.RequestURI = "/swagger/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/inquiries", deps.Inquiry.Submit)
		v1.POST("/inquiries/track", rateLimit(deps.Limiter), deps.Inquiry.Track)
		v1.POST("/assistant", handler.Assistant)

		admin := v1.Group("/admin", auth.JWTAuth(deps.JWTSecret), auth.RequireRole("admin"))
		admin.GET("/inquiries", deps.Admin.List)
		admin.PATCH("/inquiries/:id", deps.Admin.Update)
		admin.DELETE("/inquiries/:id", deps.Admin.Delete)
	}

	// Пути исходного сайта, чтобы старый фронтенд продолжал работать
	fn := r.Group("/functions/v1")
	{
		fn.POST("/submit-order", deps.Inquiry.Submit)
		fn.POST("/track-order", rateLimit(deps.Limiter), deps.Inquiry.Track)
	}

	return r
}

// cors отвечает разрешающими заголовками и закрывает preflight до любой
// бизнес-логики.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// rateLimit ограничивает вызовы по ключу — адресу вызывающего (первый адрес
// из X-Forwarded-For, иначе RemoteAddr). Ошибка лимитера не валит запрос:
// лимит здесь защита от злоупотребления, не контроль доступа.
func rateLimit(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := callerKey(c)
		ok, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Printf("ratelimit: %v", err)
			c.Next()
			return
		}
		if !ok {
			metrics.RecordLookupThrottled()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
