// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(f.Name)
	})

	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := parseCents(fl.Field().String())
		return err == nil
	})
	for tag, allowed := range map[string][]string{
		"pet_status":   model.PetStatuses,
		"order_status": model.OrderStatuses,
		"visit_status": model.VisitStatuses,
	} {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(allowed, fl.Field().String())
		})
	}
	return v
}

// validateForm returns a message describing every invalid field of f, or
// "" when f is valid.
func validateForm(f any) string {
	err := validate.Struct(f)
	if err == nil {
		return ""
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", field, fe.Param())
	case "eqfield":
		return field + " does not match"
	case "datetime":
		return field + " must be a date"
	case "url":
		return field + " must be a valid URL"
	case "price":
		return field + " must be an amount like 12.99"
	case "role":
		return field + " is not a known role"
	case "pet_status", "order_status", "visit_status":
		return field + " is not a valid status"
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func trimmed(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// intValue parses key. A blank field is 0; anything else that is not an
// integer is -1 so range checks reject it.
func intValue(r *http.Request, key string) int {
	v := trimmed(r, key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func checked(r *http.Request, key string) bool {
	v := r.FormValue(key)
	return v == "on" || v == "true" || v == "1"
}

// parseCents converts a decimal amount such as "12.5" or "$3.99" to cents.
func parseCents(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, errors.New("empty amount")
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents uint64
	if hasFrac {
		if frac == "" || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		if cents, err = strconv.ParseUint(frac, 10, 8); err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	return int64(units*100 + cents), nil
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func parseLoginForm(r *http.Request) loginForm {
	return loginForm{
		Email:    trimmed(r, "email"),
		Password: r.FormValue("password"),
	}
}

type registerForm struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"max=20"`
	Password string `validate:"required,min=8,max=128"`
	Confirm  string `validate:"eqfield=Password" label:"password confirmation"`
}

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		Name:     trimmed(r, "name"),
		Email:    trimmed(r, "email"),
		Phone:    trimmed(r, "phone"),
		Password: r.FormValue("password"),
		Confirm:  r.FormValue("password_confirm"),
	}
}

func (f registerForm) registration() api.Registration {
	return api.Registration{Name: f.Name, Email: f.Email, Password: f.Password, Phone: f.Phone}
}

type forgotForm struct {
	Email string `validate:"required,email"`
}

type visitForm struct {
	PreferredDate string `validate:"required,datetime=2006-01-02" label:"preferred date"`
	Message       string `validate:"max=1000"`
}

func parseVisitForm(r *http.Request) visitForm {
	return visitForm{
		PreferredDate: trimmed(r, "preferred_date"),
		Message:       trimmed(r, "message"),
	}
}

type checkoutForm struct {
	Address string `validate:"required,max=500" label:"shipping address"`
	Phone   string `validate:"required,max=20"`
}

func parseCheckoutForm(r *http.Request) checkoutForm {
	return checkoutForm{
		Address: trimmed(r, "address"),
		Phone:   trimmed(r, "phone"),
	}
}

type profileForm struct {
	Name    string `validate:"required,max=100"`
	Phone   string `validate:"max=20"`
	Address string `validate:"max=500"`
}

func parseProfileForm(r *http.Request) profileForm {
	return profileForm{
		Name:    trimmed(r, "name"),
		Phone:   trimmed(r, "phone"),
		Address: trimmed(r, "address"),
	}
}

type petForm struct {
	Name        string `validate:"required,max=100"`
	Species     string `validate:"required,max=50"`
	Breed       string `validate:"max=100"`
	Age         int    `validate:"gte=0,lte=40"`
	Gender      string `validate:"max=20"`
	Description string `validate:"max=5000"`
	ImageURL    string `validate:"omitempty,url" label:"image URL"`
	Status      string `validate:"pet_status"`
}

func parsePetForm(r *http.Request) petForm {
	f := petForm{
		Name:        trimmed(r, "name"),
		Species:     trimmed(r, "species"),
		Breed:       trimmed(r, "breed"),
		Age:         intValue(r, "age"),
		Gender:      trimmed(r, "gender"),
		Description: trimmed(r, "description"),
		ImageURL:    trimmed(r, "image_url"),
		Status:      strings.ToUpper(trimmed(r, "status")),
	}
	if f.Status == "" {
		f.Status = model.PetAvailable
	}
	return f
}

func (f petForm) pet() *model.Pet {
	return &model.Pet{
		Name:        f.Name,
		Species:     f.Species,
		Breed:       f.Breed,
		Age:         f.Age,
		Gender:      f.Gender,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		Status:      f.Status,
	}
}

type productForm struct {
	Name        string `validate:"required,max=150"`
	Category    string `validate:"required,max=50"`
	Description string `validate:"max=5000"`
	Price       string `validate:"required,price"`
	Stock       int    `validate:"gte=0"`
	ImageURL    string `validate:"omitempty,url" label:"image URL"`
}

func parseProductForm(r *http.Request) productForm {
	return productForm{
		Name:        trimmed(r, "name"),
		Category:    trimmed(r, "category"),
		Description: trimmed(r, "description"),
		Price:       trimmed(r, "price"),
		Stock:       intValue(r, "stock"),
		ImageURL:    trimmed(r, "image_url"),
	}
}

// product must only be called on a validated form.
func (f productForm) product() *model.Product {
	cents, _ := parseCents(f.Price)
	return &model.Product{
		Name:        f.Name,
		Category:    util.Slugify(f.Category),
		Description: f.Description,
		Price:       cents,
		Stock:       f.Stock,
		ImageURL:    f.ImageURL,
	}
}

type guideForm struct {
	Title     string `validate:"required,max=200"`
	Summary   string `validate:"max=500"`
	Category  string `validate:"required,max=50"`
	Body      string `validate:"required"`
	Published bool
}

func parseGuideForm(r *http.Request) guideForm {
	return guideForm{
		Title:     trimmed(r, "title"),
		Summary:   trimmed(r, "summary"),
		Category:  trimmed(r, "category"),
		Body:      strings.TrimSpace(r.FormValue("body")),
		Published: checked(r, "published"),
	}
}

func (f guideForm) guide() *model.Guide {
	return &model.Guide{
		Title:     f.Title,
		Summary:   f.Summary,
		Category:  util.Slugify(f.Category),
		Body:      f.Body,
		Published: f.Published,
	}
}

type orderStatusForm struct {
	Status string `validate:"required,order_status"`
}

type visitStatusForm struct {
	Status string `validate:"required,visit_status"`
}

type roleForm struct {
	Role string `validate:"required,role"`
}
