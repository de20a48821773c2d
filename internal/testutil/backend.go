// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/HariHaran212/Pawradize-sub000/internal/model"
)

// Backend is an in-memory stand-in for the Pawradise REST API. It speaks the
// same paths and JSON shapes, authenticates bearer tokens it issued and
// rejects any other presented token with 401.
type Backend struct {
	URL string

	mu       sync.Mutex
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> user id
	pets     []model.Pet
	products []model.Product
	orders   []model.Order
	guides   []model.Guide
	visits   []model.VisitRequest
	hits     map[string]int
	failNext map[string]int // path -> status for the next request
}

type account struct {
	user     model.User
	password string
}

// NewBackend starts a Backend on an httptest server closed at test end.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		hits:     make(map[string]int),
		failNext: make(map[string]int),
	}
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// AddUser registers an account and returns it with its generated ID.
func (b *Backend) AddUser(name, email, password string, role model.Role) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := model.User{ID: uuid.NewString(), Name: name, Email: email, Role: role, CreatedAt: time.Now()}
	b.accounts[strings.ToLower(email)] = &account{user: u, password: password}
	return u
}

// IssueToken returns a valid bearer token for the user with id.
func (b *Backend) IssueToken(userID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked(userID)
}

func (b *Backend) issueLocked(userID string) string {
	token := "tok-" + uuid.NewString()
	b.tokens[token] = userID
	return token
}

// RevokeAll invalidates every issued token, as a backend restart or a
// password change would.
func (b *Backend) RevokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.tokens)
}

// AddPet stores p and returns it with an ID.
func (b *Backend) AddPet(p model.Pet) model.Pet {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = strconv.Itoa(len(b.pets) + 1)
	if p.Status == "" {
		p.Status = model.PetAvailable
	}
	b.pets = append(b.pets, p)
	return p
}

// AddProduct stores p and returns it with an ID.
func (b *Backend) AddProduct(p model.Product) model.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = strconv.Itoa(len(b.products) + 1)
	b.products = append(b.products, p)
	return p
}

// AddGuide stores g and returns it with an ID.
func (b *Backend) AddGuide(g model.Guide) model.Guide {
	b.mu.Lock()
	defer b.mu.Unlock()
	g.ID = strconv.Itoa(len(b.guides) + 1)
	b.guides = append(b.guides, g)
	return g
}

// Pets returns a copy of the stored pets.
func (b *Backend) Pets() []model.Pet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Pet(nil), b.pets...)
}

// Guides returns a copy of the stored guides.
func (b *Backend) Guides() []model.Guide {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Guide(nil), b.guides...)
}

// Orders returns a copy of the stored orders.
func (b *Backend) Orders() []model.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Order(nil), b.orders...)
}

// Visits returns a copy of the stored visit requests.
func (b *Backend) Visits() []model.VisitRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.VisitRequest(nil), b.visits...)
}

// User returns the stored account with id.
func (b *Backend) User(id string) (model.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return model.User{}, false
}

// Hits returns how many requests reached "METHOD /path".
func (b *Backend) Hits(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

// FailNext makes the next request to path answer with status.
func (b *Backend) FailNext(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext[path] = status
}

type userKey struct{}

func currentUser(r *http.Request) *model.User {
	u, _ := r.Context().Value(userKey{}).(*model.User)
	return u
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.count, b.authenticate)

	r.Post("/api/auth/login", b.login)
	r.Post("/api/auth/register", b.register)
	r.Post("/api/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Head("/", func(w http.ResponseWriter, r *http.Request) {})

	r.Get("/api/pets", b.listPets)
	r.Get("/api/pets/{id}", b.getPet)
	r.Get("/api/products", b.listProducts)
	r.Get("/api/products/{id}", b.getProduct)
	r.Get("/api/guides", b.listGuides)
	r.Get("/api/guides/{id}", b.getGuide)

	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/api/profile/me", b.me)
		r.Put("/api/profile/me", b.updateProfile)
		r.Post("/api/orders", b.placeOrder)
		r.Get("/api/orders/my", b.myOrders)
		r.Get("/api/orders/{id}", b.getOrder)
		r.Post("/api/visit-requests", b.requestVisit)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireRole(model.RoleSuperAdmin, model.RoleStoreManager, model.RoleAdoptionCoordinator))
		r.Get("/api/dashboard/stats", b.stats)
		r.Post("/api/pets", b.savePet)
		r.Put("/api/pets/{id}", b.savePet)
		r.Delete("/api/pets/{id}", b.deletePet)
		r.Post("/api/products", b.saveProduct)
		r.Put("/api/products/{id}", b.saveProduct)
		r.Delete("/api/products/{id}", b.deleteProduct)
		r.Get("/api/orders", b.listOrders)
		r.Patch("/api/orders/{id}/status", b.orderStatus)
		r.Post("/api/guides", b.saveGuide)
		r.Put("/api/guides/{id}", b.saveGuide)
		r.Delete("/api/guides/{id}", b.deleteGuide)
		r.Get("/api/visit-requests", b.listVisits)
		r.Patch("/api/visit-requests/{id}/status", b.visitStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireRole(model.RoleSuperAdmin))
		r.Get("/api/users", b.listUsers)
		r.Patch("/api/users/{id}/role", b.userRole)
	})
	return r
}

func (b *Backend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.Method+" "+r.URL.Path]++
		status, fail := b.failNext[r.URL.Path]
		delete(b.failNext, r.URL.Path)
		b.mu.Unlock()

		if fail {
			reply(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		b.mu.Lock()
		var user *model.User
		if id, ok := b.tokens[token]; ok {
			for _, a := range b.accounts {
				if a.user.ID == id {
					u := a.user
					user = &u
				}
			}
		}
		b.mu.Unlock()

		if user == nil {
			reply(w, http.StatusUnauthorized, map[string]string{"message": "Invalid or expired token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	})
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) == nil {
			reply(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return requireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !model.HasRole(currentUser(r).Role, roles) {
				reply(w, http.StatusForbidden, map[string]string{"message": "Access denied"})
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Malformed JSON"})
		return false
	}
	return true
}

func paginate[T any](r *http.Request, items []T) model.Page[T] {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 12
	}
	page = max(page, 0)

	p := model.Page[T]{Page: page, Size: size, TotalItems: int64(len(items))}
	p.TotalPages = (len(items) + size - 1) / size
	start := min(page*size, len(items))
	end := min(start+size, len(items))
	p.Items = append([]T{}, items[start:end]...)
	return p
}

func matches(value, filter string) bool {
	return filter == "" || strings.EqualFold(value, filter)
}

func contains(value, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(value), strings.ToLower(search))
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in struct{ Email, Password string }
	if !decodeBody(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[strings.ToLower(in.Email)]
	if !ok || a.password != in.Password {
		reply(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}
	u := a.user
	reply(w, http.StatusOK, model.AuthResponse{Token: b.issueLocked(u.ID), User: &u})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var in struct{ Name, Email, Password, Phone string }
	if !decodeBody(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[strings.ToLower(in.Email)]; exists {
		reply(w, http.StatusConflict, map[string]string{"message": "Email is already registered"})
		return
	}
	u := model.User{ID: uuid.NewString(), Name: in.Name, Email: in.Email, Phone: in.Phone, Role: model.RoleUser}
	b.accounts[strings.ToLower(in.Email)] = &account{user: u, password: in.Password}
	reply(w, http.StatusCreated, model.AuthResponse{Token: b.issueLocked(u.ID), User: &u})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, currentUser(r))
}

func (b *Backend) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in struct{ Name, Phone, Address string }
	if !decodeBody(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.accounts[strings.ToLower(currentUser(r).Email)]
	a.user.Name, a.user.Phone, a.user.Address = in.Name, in.Phone, in.Address
	reply(w, http.StatusOK, a.user)
}

func (b *Backend) listPets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	var out []model.Pet
	for _, p := range b.pets {
		if matches(p.Status, q.Get("status")) && matches(p.Species, q.Get("species")) &&
			(contains(p.Name, q.Get("search")) || contains(p.Breed, q.Get("search"))) {
			out = append(out, p)
		}
	}
	b.mu.Unlock()
	reply(w, http.StatusOK, paginate(r, out))
}

func findByID[T any](items []T, id string, idOf func(T) string) (int, bool) {
	for i, it := range items {
		if idOf(it) == id {
			return i, true
		}
	}
	return -1, false
}

func petID(p model.Pet) string            { return p.ID }
func productID(p model.Product) string    { return p.ID }
func guideID(g model.Guide) string        { return g.ID }
func orderID(o model.Order) string        { return o.ID }
func visitID(v model.VisitRequest) string { return v.ID }

func notFound(w http.ResponseWriter, what string) {
	reply(w, http.StatusNotFound, map[string]string{"message": what + " not found"})
}

func (b *Backend) getPet(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.pets, chi.URLParam(r, "id"), petID)
	if !ok {
		notFound(w, "Pet")
		return
	}
	reply(w, http.StatusOK, b.pets[i])
}

func (b *Backend) savePet(w http.ResponseWriter, r *http.Request) {
	var p model.Pet
	if !decodeBody(w, r, &p) {
		return
	}
	if p.Name == "" {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Pet name is required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if id := chi.URLParam(r, "id"); id != "" {
		i, ok := findByID(b.pets, id, petID)
		if !ok {
			notFound(w, "Pet")
			return
		}
		p.ID = id
		b.pets[i] = p
		reply(w, http.StatusOK, p)
		return
	}
	p.ID = strconv.Itoa(len(b.pets) + 1)
	b.pets = append(b.pets, p)
	reply(w, http.StatusCreated, p)
}

func (b *Backend) deletePet(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.pets, chi.URLParam(r, "id"), petID)
	if !ok {
		notFound(w, "Pet")
		return
	}
	b.pets = append(b.pets[:i], b.pets[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	var out []model.Product
	for _, p := range b.products {
		if matches(p.Category, q.Get("category")) && contains(p.Name, q.Get("search")) {
			out = append(out, p)
		}
	}
	b.mu.Unlock()
	reply(w, http.StatusOK, paginate(r, out))
}

func (b *Backend) getProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.products, chi.URLParam(r, "id"), productID)
	if !ok {
		notFound(w, "Product")
		return
	}
	reply(w, http.StatusOK, b.products[i])
}

func (b *Backend) saveProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if !decodeBody(w, r, &p) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if id := chi.URLParam(r, "id"); id != "" {
		i, ok := findByID(b.products, id, productID)
		if !ok {
			notFound(w, "Product")
			return
		}
		p.ID = id
		b.products[i] = p
		reply(w, http.StatusOK, p)
		return
	}
	p.ID = strconv.Itoa(len(b.products) + 1)
	b.products = append(b.products, p)
	reply(w, http.StatusCreated, p)
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.products, chi.URLParam(r, "id"), productID)
	if !ok {
		notFound(w, "Product")
		return
	}
	b.products = append(b.products[:i], b.products[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) placeOrder(w http.ResponseWriter, r *http.Request) {
	var in model.NewOrder
	if !decodeBody(w, r, &in) {
		return
	}
	if len(in.Items) == 0 {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Order has no items"})
		return
	}
	u := currentUser(r)
	o := model.Order{
		ID: uuid.NewString(), UserID: u.ID, CustomerName: u.Name, Items: in.Items,
		Status: model.OrderPending, ShippingAddress: in.ShippingAddress, CreatedAt: time.Now(),
	}
	for _, it := range in.Items {
		o.Total += it.Price * int64(it.Quantity)
	}
	b.mu.Lock()
	b.orders = append(b.orders, o)
	b.mu.Unlock()
	reply(w, http.StatusCreated, o)
}

func (b *Backend) myOrders(w http.ResponseWriter, r *http.Request) {
	uid := currentUser(r).ID
	b.mu.Lock()
	var out []model.Order
	for _, o := range b.orders {
		if o.UserID == uid {
			out = append(out, o)
		}
	}
	b.mu.Unlock()
	reply(w, http.StatusOK, paginate(r, out))
}

func (b *Backend) listOrders(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	var out []model.Order
	for _, o := range b.orders {
		if matches(o.Status, r.URL.Query().Get("status")) {
			out = append(out, o)
		}
	}
	b.mu.Unlock()
	reply(w, http.StatusOK, paginate(r, out))
}

func (b *Backend) getOrder(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.orders, chi.URLParam(r, "id"), orderID)
	u := currentUser(r)
	if !ok || (u.Role == model.RoleUser && b.orders[i].UserID != u.ID) {
		notFound(w, "Order")
		return
	}
	reply(w, http.StatusOK, b.orders[i])
}

func (b *Backend) orderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct{ Status string }
	if !decodeBody(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.orders, chi.URLParam(r, "id"), orderID)
	if !ok {
		notFound(w, "Order")
		return
	}
	b.orders[i].Status = in.Status
	reply(w, http.StatusOK, b.orders[i])
}

func (b *Backend) listGuides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	drafts := q.Get("drafts") == "true" && currentUser(r) != nil && currentUser(r).Role != model.RoleUser
	b.mu.Lock()
	var out []model.Guide
	for _, g := range b.guides {
		if (g.Published || drafts) && matches(g.Category, q.Get("category")) {
			out = append(out, g)
		}
	}
	b.mu.Unlock()
	reply(w, http.StatusOK, paginate(r, out))
}

func (b *Backend) getGuide(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.guides, chi.URLParam(r, "id"), guideID)
	if !ok {
		notFound(w, "Guide")
		return
	}
	reply(w, http.StatusOK, b.guides[i])
}

func (b *Backend) saveGuide(w http.ResponseWriter, r *http.Request) {
	var g model.Guide
	if !decodeBody(w, r, &g) {
		return
	}
	g.UpdatedAt = time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()
	if id := chi.URLParam(r, "id"); id != "" {
		i, ok := findByID(b.guides, id, guideID)
		if !ok {
			notFound(w, "Guide")
			return
		}
		g.ID = id
		b.guides[i] = g
		reply(w, http.StatusOK, g)
		return
	}
	g.ID = strconv.Itoa(len(b.guides) + 1)
	b.guides = append(b.guides, g)
	reply(w, http.StatusCreated, g)
}

func (b *Backend) deleteGuide(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.guides, chi.URLParam(r, "id"), guideID)
	if !ok {
		notFound(w, "Guide")
		return
	}
	b.guides = append(b.guides[:i], b.guides[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) requestVisit(w http.ResponseWriter, r *http.Request) {
	var v model.VisitRequest
	if !decodeBody(w, r, &v) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.pets, v.PetID, petID)
	if !ok {
		notFound(w, "Pet")
		return
	}
	u := currentUser(r)
	v.ID = strconv.Itoa(len(b.visits) + 1)
	v.PetName = b.pets[i].Name
	v.UserID, v.UserName = u.ID, u.Name
	v.Status = model.VisitRequested
	v.CreatedAt = time.Now()
	b.visits = append(b.visits, v)
	reply(w, http.StatusCreated, v)
}

func (b *Backend) listVisits(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	var out []model.VisitRequest
	for _, v := range b.visits {
		if matches(v.Status, r.URL.Query().Get("status")) {
			out = append(out, v)
		}
	}
	b.mu.Unlock()
	reply(w, http.StatusOK, paginate(r, out))
}

func (b *Backend) visitStatus(w http.ResponseWriter, r *http.Request) {
	var in struct{ Status string }
	if !decodeBody(w, r, &in) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := findByID(b.visits, chi.URLParam(r, "id"), visitID)
	if !ok {
		notFound(w, "Visit request")
		return
	}
	b.visits[i].Status = in.Status
	reply(w, http.StatusOK, b.visits[i])
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	var out []model.User
	for _, a := range b.accounts {
		if matches(string(a.user.Role), q.Get("role")) &&
			(contains(a.user.Name, q.Get("search")) || contains(a.user.Email, q.Get("search"))) {
			out = append(out, a.user)
		}
	}
	b.mu.Unlock()
	slices.SortFunc(out, func(a, b model.User) int { return strings.Compare(a.Email, b.Email) })
	reply(w, http.StatusOK, paginate(r, out))
}

func (b *Backend) userRole(w http.ResponseWriter, r *http.Request) {
	var in struct{ Role model.Role }
	if !decodeBody(w, r, &in) {
		return
	}
	if !in.Role.Valid() {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Unknown role"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.user.ID == chi.URLParam(r, "id") {
			a.user.Role = in.Role
			reply(w, http.StatusOK, a.user)
			return
		}
	}
	notFound(w, "User")
}

func (b *Backend) stats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := model.DashboardStats{
		Pets:     int64(len(b.pets)),
		Products: int64(len(b.products)),
		Orders:   int64(len(b.orders)),
		Users:    int64(len(b.accounts)),
	}
	for _, p := range b.pets {
		if p.Available() {
			s.AvailablePets++
		}
	}
	for _, p := range b.products {
		if p.Stock < 5 {
			s.LowStock++
		}
	}
	for _, o := range b.orders {
		if o.Status == model.OrderPending {
			s.PendingOrders++
		}
	}
	for _, v := range b.visits {
		if v.Status == model.VisitRequested {
			s.PendingVisits++
		}
	}
	for _, g := range b.guides {
		if g.Published {
			s.PublishedGuides++
		}
	}
	reply(w, http.StatusOK, s)
}
