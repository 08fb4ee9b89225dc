package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

// maxImageUploadBytes caps product image uploads at 8 MB.
const maxImageUploadBytes = 8 << 20

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := services.ProductFilter{
		Page:     queryInt(q.Get("page"), 1),
		Limit:    queryInt(q.Get("limit"), 20),
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if v := q.Get("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := q.Get("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}

	result, err := c.products.List(r.Context(), f)
	if err != nil {
		fail(w, err)
		return
	}
	response.Paginated(w, result.Products, response.NewPagination(f.Page, f.Limit, result.Total))
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.Get(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var body services.ProductInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(r.Context(), body)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var body services.ProductInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(r.Context(), router.Param(r, "id"), body)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), router.Param(r, "id")); err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "product deleted", nil)
}

// UploadImage accepts a multipart form with an "image" file field.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	product, err := c.products.AttachImage(r.Context(), router.Param(r, "id"), header.Filename, file)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, product)
}

// AddReview appends a customer review.
func (c *ProductController) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body struct {
		Rating int    `json:"rating" validate:"required,integer,between=1,5"`
		Text   string `json:"text" validate:"nullable,max=2000"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.products.AddReview(r.Context(), router.Param(r, "id"), userID, body.Rating, body.Text); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, nil)
}

// queryInt parses a positive query integer with a fallback.
func queryInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
