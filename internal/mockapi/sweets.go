package mockapi

import (
	"io"
	"net/http"
	"strings"

	"go-sweet-storefront/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sweetRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// Seed loads the inventory the server starts with.
func (s *Server) Seed(sweets []catalog.Sweet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweets = append([]catalog.Sweet(nil), sweets...)
}

func (s *Server) listSweets(c *gin.Context) {
	s.mu.Lock()
	out := append([]catalog.Sweet(nil), s.sweets...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) searchSweets(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))

	s.mu.Lock()
	var out []catalog.Sweet
	for _, sw := range s.sweets {
		if strings.Contains(strings.ToLower(sw.Name), q) ||
			strings.Contains(strings.ToLower(sw.Category), q) {
			out = append(out, sw)
		}
	}
	s.mu.Unlock()

	if out == nil {
		out = []catalog.Sweet{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createSweet(c *gin.Context) {
	var req sweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Price.IsNegative() || req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "price and quantity must be non-negative"})
		return
	}

	sweet := catalog.Sweet{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	}

	s.mu.Lock()
	s.sweets = append(s.sweets, sweet)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, sweet)
}

func (s *Server) updateSweet(c *gin.Context) {
	var req sweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sweets {
		if s.sweets[i].ID != id {
			continue
		}
		s.sweets[i].Name = req.Name
		s.sweets[i].Category = req.Category
		s.sweets[i].Price = req.Price
		s.sweets[i].Quantity = req.Quantity
		s.sweets[i].Description = req.Description
		c.JSON(http.StatusOK, s.sweets[i])
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "sweet not found"})
}

func (s *Server) deleteSweet(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sweets {
		if s.sweets[i].ID == id {
			s.sweets = append(s.sweets[:i], s.sweets[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "sweet not found"})
}

func (s *Server) purchaseSweet(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be positive"})
		return
	}

	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sweets {
		if s.sweets[i].ID != id {
			continue
		}
		if s.sweets[i].Quantity < req.Quantity {
			c.JSON(http.StatusConflict, gin.H{"message": "insufficient stock"})
			return
		}
		s.sweets[i].Quantity -= req.Quantity
		c.JSON(http.StatusOK, s.sweets[i])
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "sweet not found"})
}

func (s *Server) restockSweet(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be positive"})
		return
	}

	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sweets {
		if s.sweets[i].ID == id {
			s.sweets[i].Quantity += req.Quantity
			c.JSON(http.StatusOK, s.sweets[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "sweet not found"})
}

func (s *Server) uploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "reading upload failed"})
		return
	}

	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sweets {
		if s.sweets[i].ID == id {
			s.images[id] = data
			s.sweets[i].ImageURL = "/images/" + id + "/" + header.Filename
			c.JSON(http.StatusOK, s.sweets[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "sweet not found"})
}
