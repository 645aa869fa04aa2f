package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeCategoryUseCase struct {
	ListCategoriesFn       func(ctx context.Context) ([]domain.Category, error)
	GetCategoryByIDFn      func(ctx context.Context, id int) (*domain.Category, error)
	ListCategoryProductsFn func(ctx context.Context, id int) ([]domain.Product, error)
	CreateCategoryFn       func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategoryFn       func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategoryFn       func(ctx context.Context, id int) error
}

func (f *fakeCategoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.ListCategoriesFn(ctx)
}

func (f *fakeCategoryUseCase) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	return f.GetCategoryByIDFn(ctx, id)
}

func (f *fakeCategoryUseCase) ListCategoryProducts(ctx context.Context, id int) ([]domain.Product, error) {
	return f.ListCategoryProductsFn(ctx, id)
}

func (f *fakeCategoryUseCase) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return f.CreateCategoryFn(ctx, category)
}

func (f *fakeCategoryUseCase) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return f.UpdateCategoryFn(ctx, category)
}

func (f *fakeCategoryUseCase) DeleteCategory(ctx context.Context, id int) error {
	return f.DeleteCategoryFn(ctx, id)
}

type fakeProductUseCase struct {
	ListProductsFn   func(ctx context.Context) ([]domain.Product, error)
	GetProductByIDFn func(ctx context.Context, id int) (*domain.Product, error)
	CreateProductFn  func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProductFn  func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProductFn  func(ctx context.Context, id int) error
}

func (f *fakeProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.ListProductsFn(ctx)
}

func (f *fakeProductUseCase) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	return f.GetProductByIDFn(ctx, id)
}

func (f *fakeProductUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return f.CreateProductFn(ctx, product)
}

func (f *fakeProductUseCase) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return f.UpdateProductFn(ctx, product)
}

func (f *fakeProductUseCase) DeleteProduct(ctx context.Context, id int) error {
	return f.DeleteProductFn(ctx, id)
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

type testServer struct {
	router *gin.Engine
	hook   *test.Hook
}

func newTestServer(t *testing.T, categories *fakeCategoryUseCase, products *fakeProductUseCase, pinger Pinger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	if categories == nil {
		categories = &fakeCategoryUseCase{}
	}
	if products == nil {
		products = &fakeProductUseCase{}
	}
	if pinger == nil {
		pinger = fakePinger{}
	}

	router := NewRouter(RouterDeps{
		Categories: NewCategoryHandler(categories, logger),
		Products:   NewProductHandler(products, logger),
		DB:         pinger,
		Log:        logger,
	})
	return &testServer{router: router, hook: hook}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
