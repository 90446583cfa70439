// Package mockapi is an in-memory stand-in for the sweet-shop backend,
// implementing the REST surface the storefront consumes. It exists for
// local development and end-to-end tests; it is not the production
// backend.
package mockapi

import (
	"net/http"
	"strings"
	"sync"

	"go-sweet-storefront/internal/catalog"
	"go-sweet-storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type user struct {
	ID           string
	Email        string
	Firstname    string
	Lastname     string
	PasswordHash []byte
	Role         string
}

type Server struct {
	mu sync.Mutex

	engine *gin.Engine
	logger *zap.Logger

	jwtSecret      []byte
	razorpaySecret string

	users  map[string]*user // keyed by email
	sweets []catalog.Sweet
	images map[string][]byte
	orders map[string]int64 // gateway order id -> amount in paise
}

type Config struct {
	JWTSecret         string
	RazorpayKeySecret string
	Logger            *zap.Logger
}

func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:         gin.New(),
		logger:         cfg.Logger,
		jwtSecret:      []byte(cfg.JWTSecret),
		razorpaySecret: cfg.RazorpayKeySecret,
		users:          make(map[string]*user),
		images:         make(map[string][]byte),
		orders:         make(map[string]int64),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)

		sweets := api.Group("/sweets", s.requireAuth())
		{
			sweets.GET("", s.listSweets)
			sweets.GET("/search", s.searchSweets)
			sweets.POST("/:id/purchase", s.purchaseSweet)

			admin := sweets.Group("", s.requireAdmin())
			{
				admin.POST("", s.createSweet)
				admin.PUT("/:id", s.updateSweet)
				admin.DELETE("/:id", s.deleteSweet)
				admin.POST("/:id/restock", s.restockSweet)
				admin.POST("/:id/upload-image", s.uploadImage)
			}
		}

		pay := api.Group("/payment", s.requireAuth())
		{
			pay.POST("/create-order", s.createPaymentOrder)
			pay.POST("/verify-payment", s.verifyPayment)
		}
	}
}

const ctxRoleKey = "role"

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token claims"})
			return
		}
		role, _ := claims["role"].(string)
		c.Set(ctxRoleKey, role)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRoleKey) != session.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}
