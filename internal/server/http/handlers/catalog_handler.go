package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CatalogHandler serves product pages.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /products.
func (h *CatalogHandler) List(c *gin.Context) {
	var q dto.ProductQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	filter := model.ProductFilter{CategoryID: q.Category, Page: q.Page, PerPage: q.PerPage}
	products, err := h.facade.Products(c.Request.Context(), filter, c.Request.URL.RawQuery, forceRefresh(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Show handles GET /products/:id.
func (h *CatalogHandler) Show(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id, forceRefresh(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, product)
}

// forceRefresh reports whether a signed-in client asked to bypass cached
// copies. Anonymous reloads always read through the cache.
func forceRefresh(c *gin.Context) bool {
	if CurrentUserID(c) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(c.GetHeader("Cache-Control")), "no-cache")
}
