package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

type cartItemBody struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,integer,gte=1"`
}

func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	cart, err := c.carts.Get(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body cartItemBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.AddItem(r.Context(), userID, body.ProductID, body.VariantID, body.Quantity)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body cartItemBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.UpdateItem(r.Context(), userID, body.ProductID, body.VariantID, body.Quantity)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body struct {
		ProductID string `json:"product_id" validate:"required"`
		VariantID string `json:"variant_id" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.RemoveItem(r.Context(), userID, body.ProductID, body.VariantID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	cart, err := c.carts.Clear(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, cart)
}
