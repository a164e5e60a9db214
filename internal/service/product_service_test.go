package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/pkg/errs"
)

func newProductServiceFixture() (*fakeProductRepo, ProductService) {
	repo := newFakeProductRepo()
	return repo, CreateProductService(repo)
}

func TestAddProduct(t *testing.T) {
	_, svc := newProductServiceFixture()

	product, err := svc.AddProduct(context.Background(), dto.ProductRequest{
		Name:     "Basmati Rice",
		Price:    50,
		Category: "Grains",
		Stock:    20,
		Units: []dto.ProductUnitRequest{
			{Unit: "box", Quantity: 10, Price: 450},
			{Unit: "bag", Quantity: 25, Price: 1000},
		},
	})

	require.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	assert.Equal(t, int64(20), product.Stock)
	require.Len(t, product.OrderConfig.Units, 2)
	// No tier was marked default, so the first one becomes it.
	assert.True(t, product.OrderConfig.Units[0].IsDefault)
	assert.False(t, product.OrderConfig.Units[1].IsDefault)
}

func TestAddProduct_Validation(t *testing.T) {
	type testCase struct {
		name string
		req  dto.ProductRequest
	}

	testCases := []testCase{
		{name: "missing name", req: dto.ProductRequest{Price: 10}},
		{name: "zero price", req: dto.ProductRequest{Name: "Basmati Rice"}},
		{name: "negative price", req: dto.ProductRequest{Name: "Basmati Rice", Price: -5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, svc := newProductServiceFixture()

			_, err := svc.AddProduct(context.Background(), tc.req)

			assert.ErrorIs(t, err, errs.ErrClient)
		})
	}
}

func TestAddProduct_ClampsNegativeStock(t *testing.T) {
	_, svc := newProductServiceFixture()

	product, err := svc.AddProduct(context.Background(), dto.ProductRequest{Name: "Basmati Rice", Price: 50, Stock: -3})

	require.NoError(t, err)
	assert.Equal(t, int64(0), product.Stock)
}

func TestNormalizeUnits_SingleDefault(t *testing.T) {
	type testCase struct {
		name            string
		units           []dto.ProductUnitRequest
		expectedDefault int
	}

	testCases := []testCase{
		{
			name: "first marked default wins",
			units: []dto.ProductUnitRequest{
				{Unit: "box", IsDefault: false},
				{Unit: "bag", IsDefault: true},
				{Unit: "pallet", IsDefault: true},
			},
			expectedDefault: 1,
		},
		{
			name: "none marked falls back to first",
			units: []dto.ProductUnitRequest{
				{Unit: "box"},
				{Unit: "bag"},
			},
			expectedDefault: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, svc := newProductServiceFixture()

			product, err := svc.AddProduct(context.Background(), dto.ProductRequest{Name: "Basmati Rice", Price: 50, Units: tc.units})

			require.NoError(t, err)
			for i, u := range product.OrderConfig.Units {
				assert.Equal(t, i == tc.expectedDefault, u.IsDefault, "unit %s", u.Unit)
			}
		})
	}
}

func TestGetProducts_PriceFilterAndCounts(t *testing.T) {
	repo, svc := newProductServiceFixture()
	for i := 1; i <= 5; i++ {
		repo.seed(domain.Product{Name: fmt.Sprintf("Item %d", i), Price: float64(i * 100)})
	}

	resp, err := svc.GetProducts(context.Background(), dto.ProductFilter{PriceGte: "200", PriceLte: "400", Page: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ProductsCount)
	assert.Equal(t, int64(3), resp.FilteredProductsCount)
	assert.Len(t, resp.Products, 3)
	assert.Equal(t, 12, resp.ResultPerPage)
}

func TestGetProducts_KeywordFilter(t *testing.T) {
	repo, svc := newProductServiceFixture()
	repo.seed(domain.Product{Name: "Basmati Rice", Category: "Grains"})
	repo.seed(domain.Product{Name: "Toor Dal", Category: "Pulses"})
	repo.seed(domain.Product{Name: "Rice Flour", Category: "Flour"})

	resp, err := svc.GetProducts(context.Background(), dto.ProductFilter{Keyword: "rice", Page: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.FilteredProductsCount)
}

func TestUpdateProduct_PartialFields(t *testing.T) {
	repo, svc := newProductServiceFixture()
	seeded := repo.seed(domain.Product{Name: "Basmati Rice", Description: "Long grain", Price: 50, Category: "Grains", Stock: 10})

	updated, err := svc.UpdateProduct(context.Background(), seeded.ID.Hex(), dto.ProductRequest{Price: 60, Stock: 8})

	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice", updated.Name)
	assert.Equal(t, "Long grain", updated.Description)
	assert.Equal(t, "Grains", updated.Category)
	assert.Equal(t, 60.0, updated.Price)
	assert.Equal(t, int64(8), updated.Stock)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	_, svc := newProductServiceFixture()

	_, err := svc.UpdateProduct(context.Background(), "64f000000000000000000000", dto.ProductRequest{Price: 60})

	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpsertReview(t *testing.T) {
	repo, svc := newProductServiceFixture()
	seeded := repo.seed(domain.Product{Name: "Basmati Rice", Price: 50})
	reviewer := primitive.NewObjectID()

	product, err := svc.UpsertReview(context.Background(), seeded.ID.Hex(), reviewer.Hex(), "Asha", dto.ReviewRequest{Rating: 4, Comment: "good"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.NumOfReviews)
	assert.Equal(t, 4.0, product.Ratings)

	// Same user again replaces the existing review instead of adding one.
	product, err = svc.UpsertReview(context.Background(), seeded.ID.Hex(), reviewer.Hex(), "Asha", dto.ReviewRequest{Rating: 2, Comment: "changed my mind"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.NumOfReviews)
	assert.Equal(t, 2.0, product.Ratings)
	assert.Equal(t, "changed my mind", product.Reviews[0].Comment)

	// A second user pushes the count and recomputes the mean.
	product, err = svc.UpsertReview(context.Background(), seeded.ID.Hex(), primitive.NewObjectID().Hex(), "Ravi", dto.ReviewRequest{Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), product.NumOfReviews)
	assert.Equal(t, 3.0, product.Ratings)
}

func TestUpsertReview_InvalidRating(t *testing.T) {
	repo, svc := newProductServiceFixture()
	seeded := repo.seed(domain.Product{Name: "Basmati Rice", Price: 50})

	for _, rating := range []float64{0, -1, 5.5, 6} {
		_, err := svc.UpsertReview(context.Background(), seeded.ID.Hex(), primitive.NewObjectID().Hex(), "Asha", dto.ReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, errs.ErrClient, "rating %v", rating)
	}
}

func TestDeleteReview(t *testing.T) {
	repo, svc := newProductServiceFixture()
	seeded := repo.seed(domain.Product{Name: "Basmati Rice", Price: 50})

	first, err := svc.UpsertReview(context.Background(), seeded.ID.Hex(), primitive.NewObjectID().Hex(), "Asha", dto.ReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = svc.UpsertReview(context.Background(), seeded.ID.Hex(), primitive.NewObjectID().Hex(), "Ravi", dto.ReviewRequest{Rating: 3})
	require.NoError(t, err)

	product, err := svc.DeleteReview(context.Background(), seeded.ID.Hex(), first.Reviews[0].ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, int64(1), product.NumOfReviews)
	assert.Equal(t, 3.0, product.Ratings)
}

func TestDeleteReview_LastReviewResetsMean(t *testing.T) {
	repo, svc := newProductServiceFixture()
	seeded := repo.seed(domain.Product{Name: "Basmati Rice", Price: 50})

	product, err := svc.UpsertReview(context.Background(), seeded.ID.Hex(), primitive.NewObjectID().Hex(), "Asha", dto.ReviewRequest{Rating: 5})
	require.NoError(t, err)

	product, err = svc.DeleteReview(context.Background(), seeded.ID.Hex(), product.Reviews[0].ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, int64(0), product.NumOfReviews)
	assert.Equal(t, 0.0, product.Ratings)
	assert.Empty(t, product.Reviews)
}

func TestDeleteReview_NotFound(t *testing.T) {
	repo, svc := newProductServiceFixture()
	seeded := repo.seed(domain.Product{Name: "Basmati Rice", Price: 50})

	_, err := svc.DeleteReview(context.Background(), seeded.ID.Hex(), primitive.NewObjectID().Hex())

	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo, svc := newProductServiceFixture()
	seeded := repo.seed(domain.Product{Name: "Basmati Rice", Price: 50})

	require.NoError(t, svc.DeleteProduct(context.Background(), seeded.ID.Hex()))

	_, err := svc.GetProductByID(context.Background(), seeded.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), seeded.ID.Hex()), errs.ErrNotFound)
}
