package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// AddressHandler serves the address book under /account/address.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// List handles GET /account/address.
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.facade.Addresses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(addresses) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

// Create handles POST /account/address.
func (h *AddressHandler) Create(c *gin.Context) {
	h.save(c, 0, http.StatusCreated)
}

// Update handles PUT /account/address/:id.
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := addressID(c)
	if !ok {
		return
	}
	h.save(c, id, http.StatusOK)
}

// Delete handles DELETE /account/address/:id.
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := addressID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteAddress(c.Request.Context(), CurrentUserID(c), id); err != nil {
		writeAddressError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AddressHandler) save(c *gin.Context, id int64, status int) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	saved, err := h.facade.SaveAddress(c.Request.Context(), CurrentUserID(c), model.Address{
		ID:           id,
		Province:     req.Province,
		City:         req.City,
		District:     req.District,
		Address:      req.Address,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		writeAddressError(c, err)
		return
	}
	c.JSON(status, saved)
}

func addressID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidAddress):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
