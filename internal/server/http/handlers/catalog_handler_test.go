package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func TestCatalogHandlerList(t *testing.T) {
	var (
		gotFilter model.ProductFilter
		gotQuery  string
		gotForce  bool
	)
	facade := testhelpers.CatalogFacadeStub{ProductsFn: func(_ context.Context, filter model.ProductFilter, rawQuery string, force bool) ([]model.Product, error) {
		gotFilter, gotQuery, gotForce = filter, rawQuery, force
		return nil, nil
	}}

	resp := performRoute(t, http.MethodGet, "/products", "/products?category=3&page=2&per_page=5", NewCatalogHandler(facade).List, asUser(1), nil, map[string]string{"Cache-Control": "no-cache"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotFilter != (model.ProductFilter{CategoryID: 3, Page: 2, PerPage: 5}) {
		t.Fatalf("unexpected filter %+v", gotFilter)
	}
	if gotQuery != "category=3&page=2&per_page=5" {
		t.Fatalf("unexpected raw query %q", gotQuery)
	}
	if !gotForce {
		t.Fatalf("expected no-cache to force refresh")
	}
	if body := resp.Body.String(); body != "null" && body != "[]" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestCatalogHandlerAnonymousReloadUsesCache(t *testing.T) {
	var gotForce bool
	facade := testhelpers.CatalogFacadeStub{
		ProductsFn: func(_ context.Context, _ model.ProductFilter, _ string, force bool) ([]model.Product, error) {
			gotForce = force
			return nil, nil
		},
		ProductFn: func(_ context.Context, id int64, force bool) (*model.Product, error) {
			gotForce = gotForce || force
			return &model.Product{ID: id}, nil
		},
	}
	headers := map[string]string{"Cache-Control": "no-cache"}

	resp := performRequest(t, http.MethodGet, "/products", NewCatalogHandler(facade).List, nil, nil, headers)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = performRoute(t, http.MethodGet, "/products/:id", "/products/3", NewCatalogHandler(facade).Show, nil, nil, headers)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotForce {
		t.Fatal("anonymous no-cache request must not bypass the cache")
	}
}

func TestCatalogHandlerListFailures(t *testing.T) {
	resp := performRoute(t, http.MethodGet, "/products", "/products?page=abc", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).List, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	broken := testhelpers.CatalogFacadeStub{ProductsFn: func(context.Context, model.ProductFilter, string, bool) ([]model.Product, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/products", NewCatalogHandler(broken).List, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestCatalogHandlerShow(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		force  bool
	}{
		{name: "found", target: "/products/5", status: http.StatusOK},
		{name: "not a number", target: "/products/five", status: http.StatusNotFound},
		{name: "missing", target: "/products/5", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "internal", target: "/products/5", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.CatalogFacadeStub{ProductFn: func(_ context.Context, id int64, force bool) (*model.Product, error) {
				if id != 5 || force {
					t.Fatalf("unexpected call %d %v", id, force)
				}
				if tt.err != nil {
					return nil, tt.err
				}
				return &model.Product{ID: id, Title: "Lamp"}, nil
			}}
			resp := performRoute(t, http.MethodGet, "/products/:id", tt.target, NewCatalogHandler(facade).Show, nil, nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}
