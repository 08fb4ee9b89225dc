package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Username string `json:"username" validate:"required,alpha_dash,min=3,max=32"`
		Password string `json:"password" validate:"required,min=8,max=72"`
		FullName string `json:"full_name" validate:"nullable,max=100"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Register(r.Context(), body.Email, body.Username, body.Password, body.FullName)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, result)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, result)
}

func (c *AuthController) SendOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.auth.SendOTP(r.Context(), body.Email); err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "verification code sent", nil)
}

func (c *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"code" validate:"required,digits=6"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.VerifyOTP(r.Context(), body.Email, body.Code)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, result)
}
