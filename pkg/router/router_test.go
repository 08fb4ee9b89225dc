package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := New()
	r.Get("/products/{id}", "products.show", ok("show"))

	path, found := r.Path("products.show")
	if !found || path != "/products/{id}" {
		t.Errorf("Path = %q, %v", path, found)
	}

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/products/42" {
		t.Errorf("URL = %q, want /products/42", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("ghost.route", nil); err == nil {
		t.Error("expected error for unknown route name")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	api := r.Group("/api/v1", tag("outer"))
	products := api.Group("/products", tag("inner"))
	products.Get("/{id}", "products.show", ok("show"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/7", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "show" {
		t.Fatalf("status %d body %q", rec.Code, rec.Body.String())
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v, want [outer inner]", order)
	}
}

func TestParam(t *testing.T) {
	r := New()
	r.Get("/orders/{id}", "orders.show", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(Param(req, "id"))) //nolint:errcheck
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/ORD-9", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Body.String() != "ORD-9" {
		t.Errorf("param body = %q, want ORD-9", rec.Body.String())
	}
}

func TestMethodRouting(t *testing.T) {
	r := New()
	r.Post("/carts/items", "cart.add", ok("added"))

	req := httptest.NewRequest(http.MethodGet, "/carts/items", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on POST route = %d, want 405", rec.Code)
	}
}
