package mockapi

import (
	"net/http"
	"strings"
	"time"

	"go-sweet-storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token     string `json:"token"`
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// SeedAdmin registers an administrator account directly, for dev setups
// where nobody wants to hit the register endpoint first.
func (s *Server) SeedAdmin(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(email)] = &user{
		ID:           uuid.NewString(),
		Email:        email,
		Firstname:    "Shop",
		Lastname:     "Admin",
		PasswordHash: hash,
		Role:         session.RoleAdmin,
	}
	return nil
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "hashing password failed"})
		return
	}

	key := strings.ToLower(req.Email)

	s.mu.Lock()
	if _, exists := s.users[key]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	}
	u := &user{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		PasswordHash: hash,
		Role:         session.RoleUser,
	}
	s.users[key] = u
	s.mu.Unlock()

	s.respondWithToken(c, http.StatusCreated, u)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	u, ok := s.users[strings.ToLower(req.Email)]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	s.respondWithToken(c, http.StatusOK, u)
}

func (s *Server) respondWithToken(c *gin.Context, status int, u *user) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "signing token failed"})
		return
	}

	c.JSON(status, authResponse{
		Token:     signed,
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Role:      u.Role,
	})
}
