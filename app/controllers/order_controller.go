package controllers

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

type OrderController struct {
	orders *services.OrderService
	feed   *ws.Hub
}

func NewOrderController(orders *services.OrderService, feed *ws.Hub) *OrderController {
	return &OrderController{orders: orders, feed: feed}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body struct {
		ShippingAddress models.Address `json:"shipping_address"`
		PaymentMethod   string         `json:"payment_method" validate:"required,in=Credit Card,COD,PayPal,Bank Transfer"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Create(r.Context(), userID, body.ShippingAddress, body.PaymentMethod)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, order)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	order, err := c.orders.GetForUser(r.Context(), router.Param(r, "id"), userID, isAdmin(r))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, limit := queryInt(q.Get("page"), 1), queryInt(q.Get("limit"), 20)
	orders, total, err := c.orders.ListForUser(r.Context(), userID, page, limit, q.Get("status"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Paginated(w, orders, response.NewPagination(page, limit, total))
}

func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := services.OrderFilter{
		Page:     queryInt(q.Get("page"), 1),
		Limit:    queryInt(q.Get("limit"), 20),
		Status:   q.Get("status"),
		SortDesc: q.Get("sort") != "asc",
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.To = &t
		}
	}

	result, err := c.orders.ListAll(r.Context(), f)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, result)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status" validate:"required,in=Pending,Processing,Shipped,Delivered,Cancelled"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), router.Param(r, "id"), body.Status)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.orders.Stats(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, stats)
}

// Feed upgrades the connection to the admin live order feed.
func (c *OrderController) Feed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.feed)
}
