package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/komorebi/backend/internal/application/catalog"
	curatorapp "github.com/komorebi/backend/internal/application/curator"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Map-backed mocks for the catalog repositories

type mockProductRepository struct {
	products  map[uuid.UUID]*catalog.Product
	returnErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range m.products {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProductRepository) FindListed(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range m.products {
		if p.Listed {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range m.products {
		if p.Listed && p.CategoryID != nil && *p.CategoryID == categoryID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) Search(ctx context.Context, keyword string, filter shared.Filter) ([]catalog.Product, error) {
	return m.FindListed(ctx, filter)
}

func (m *mockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(m.products)), nil
}

type mockVariantRepository struct {
	variants map[uuid.UUID]*catalog.ProductVariant
}

func newMockVariantRepository() *mockVariantRepository {
	return &mockVariantRepository{variants: make(map[uuid.UUID]*catalog.ProductVariant)}
}

func (m *mockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	if v, ok := m.variants[id]; ok {
		return v, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductVariant, error) {
	var result []catalog.ProductVariant
	for _, v := range m.variants {
		if v.ProductID == productID {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (m *mockVariantRepository) FindBySKU(ctx context.Context, skuCode string) (*catalog.ProductVariant, error) {
	for _, v := range m.variants {
		if v.SKUCode == skuCode {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockVariantRepository) Save(ctx context.Context, variant *catalog.ProductVariant) error {
	m.variants[variant.ID] = variant
	return nil
}

func (m *mockVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.variants[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.variants, id)
	return nil
}

type mockCategoryRepository struct {
	categories map[uuid.UUID]*catalog.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[uuid.UUID]*catalog.Category)}
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var result []catalog.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

type staticNoteGenerator struct {
	note string
	err  error
}

func (g *staticNoteGenerator) GenerateNote(ctx context.Context, req curatorapp.NoteRequest) (string, error) {
	return g.note, g.err
}

func newProductTestRouter(t *testing.T, productRepo *mockProductRepository) (*gin.Engine, *ProductHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	productService := catalogapp.NewProductService(productRepo, newMockVariantRepository(), newMockCategoryRepository())
	noteService := curatorapp.NewService(productRepo, &staticNoteGenerator{note: "A quiet companion for slow mornings."}, nil)
	handler := NewProductHandler(productService, noteService)

	router := gin.New()
	router.GET("/products", handler.List)
	router.GET("/products/search", handler.Search)
	router.GET("/products/slug/:slug", handler.GetBySlug)
	router.GET("/products/:id", handler.Get)
	router.GET("/products/:id/curator-note", handler.CuratorNote)
	return router, handler
}

func newAdminProductTestRouter(t *testing.T, productRepo *mockProductRepository, variantRepo *mockVariantRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	productService := catalogapp.NewProductService(productRepo, variantRepo, newMockCategoryRepository())
	noteService := curatorapp.NewService(productRepo, &staticNoteGenerator{}, nil)
	handler := NewProductHandler(productService, noteService)

	router := gin.New()
	router.POST("/admin/products/:id/variants", handler.CreateVariant)
	router.PUT("/admin/variants/:id", handler.UpdateVariant)
	router.DELETE("/admin/variants/:id", handler.DeleteVariant)
	return router
}

func seedProduct(t *testing.T, repo *mockProductRepository, name string, listed bool) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "A thing of quiet beauty", decimal.NewFromInt(120))
	require.NoError(t, err)
	if !listed {
		p.Unlist()
	}
	repo.products[p.ID] = p
	return p
}

func TestProductHandlerList(t *testing.T) {
	repo := newMockProductRepository()
	seedProduct(t, repo, "Iron Teapot (Kyusu)", true)
	seedProduct(t, repo, "Retired Vase", false)
	router, _ := newProductTestRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                         `json:"success"`
		Data    []catalogapp.ProductResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Iron Teapot (Kyusu)", resp.Data[0].Name)
	assert.NotEmpty(t, resp.Data[0].Slug)
}

func TestProductHandlerGetBySlug(t *testing.T) {
	repo := newMockProductRepository()
	p := seedProduct(t, repo, "Linen Haori Jacket", true)
	router, _ := newProductTestRouter(t, repo)

	slug := catalog.EncodeSlug(p.ID.String(), p.Name)

	t.Run("resolves slug to product", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/slug/"+slug, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data catalogapp.ProductResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, p.ID, resp.Data.ID)
	})

	t.Run("malformed slug", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/slug/not-a-real-slug", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandlerGet(t *testing.T) {
	repo := newMockProductRepository()
	p := seedProduct(t, repo, "Hinoki Bath Stool", true)
	router, _ := newProductTestRouter(t, repo)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/"+p.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/"+uuid.New().String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func jsonRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestProductHandlerVariantAdmin(t *testing.T) {
	productRepo := newMockProductRepository()
	variantRepo := newMockVariantRepository()
	p := seedProduct(t, productRepo, "Indigo Noren Curtain", true)
	router := newAdminProductTestRouter(t, productRepo, variantRepo)

	t.Run("creates a variant under a product", func(t *testing.T) {
		w := jsonRequest(t, router, "POST", "/admin/products/"+p.ID.String()+"/variants", map[string]interface{}{
			"sku_code": "nor-ind", "color": "indigo", "size": "standard", "stock": 6,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Data catalogapp.VariantResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NOR-IND", resp.Data.SKUCode)
		assert.Equal(t, p.ID, resp.Data.ProductID)
	})

	t.Run("updates a variant in place", func(t *testing.T) {
		v, err := catalog.NewProductVariant(p.ID, "NOR-NAT", "natural", "standard", 2)
		require.NoError(t, err)
		variantRepo.variants[v.ID] = v

		w := jsonRequest(t, router, "PUT", "/admin/variants/"+v.ID.String(), map[string]interface{}{
			"color": "ecru", "stock": 8,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data catalogapp.VariantResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ecru", resp.Data.Color)
		assert.Equal(t, 8, resp.Data.Stock)
		assert.Equal(t, "NOR-NAT", resp.Data.SKUCode)
	})

	t.Run("deletes a variant", func(t *testing.T) {
		v, err := catalog.NewProductVariant(p.ID, "NOR-GRY", "grey", "standard", 1)
		require.NoError(t, err)
		variantRepo.variants[v.ID] = v

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/admin/variants/"+v.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotContains(t, variantRepo.variants, v.ID)
	})

	t.Run("deleting an unknown variant returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/admin/variants/"+uuid.New().String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandlerCuratorNote(t *testing.T) {
	repo := newMockProductRepository()
	p := seedProduct(t, repo, "Wooden Bento Box", true)
	router, _ := newProductTestRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products/"+p.ID.String()+"/curator-note", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data curatorapp.NoteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, p.ID, resp.Data.ProductID)
	assert.Equal(t, "A quiet companion for slow mornings.", resp.Data.Note)
}
