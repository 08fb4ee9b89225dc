package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := c.users.Profile(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, user)
}

// ProfileByID serves admin lookups of any user's profile.
func (c *UserController) ProfileByID(w http.ResponseWriter, r *http.Request) {
	user, err := c.users.Profile(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, user)
}

func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body services.ProfileUpdate
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.UpdateProfile(r.Context(), userID, body)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, user)
}

func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.users.ChangePassword(r.Context(), userID, body.OldPassword, body.NewPassword); err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "password updated", nil)
}
