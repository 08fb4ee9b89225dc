package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f services.CategoryFilter
	if q.Has("parent_id") {
		parent := q.Get("parent_id")
		f.ParentID = &parent
	}
	if v := q.Get("is_active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			f.IsActive = &active
		}
	}

	categories, err := c.categories.List(r.Context(), f)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, categories)
}

func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.Get(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body services.CategoryInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Create(r.Context(), body)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	var body services.CategoryInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Update(r.Context(), router.Param(r, "id"), body)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.categories.Delete(r.Context(), router.Param(r, "id")); err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "category deleted", nil)
}
