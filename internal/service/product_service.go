package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/internal/repository"
	"github.com/tradewell/storefront/pkg/errs"
)

// resultPerPage is the storefront listing page size.
const resultPerPage = 12

type ProductServiceImpl struct {
	productRepo repository.ProductRepository
}

func CreateProductService(productRepo repository.ProductRepository) ProductService {
	return &ProductServiceImpl{productRepo: productRepo}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error) {
	if req.Name == "" || req.Price <= 0 {
		return product, errs.ErrClient
	}

	now := time.Now()
	product = domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CuttedPrice: req.CuttedPrice,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Stock:       req.Stock,
		Reviews:     []domain.Review{},
		OrderConfig: domain.OrderConfig{Units: normalizeUnits(req.Units)},
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if product.Stock < 0 {
		product.Stock = 0
	}

	id, err := s.productRepo.AddProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	product.ID = id
	return product, nil
}

// normalizeUnits keeps the unit-tier invariant: exactly one default. The
// first tier marked default wins; when none is marked, the first tier
// becomes the default.
func normalizeUnits(reqUnits []dto.ProductUnitRequest) []domain.ProductUnit {
	units := make([]domain.ProductUnit, len(reqUnits))
	defaultSeen := false
	for i, u := range reqUnits {
		isDefault := u.IsDefault && !defaultSeen
		if isDefault {
			defaultSeen = true
		}
		units[i] = domain.ProductUnit{
			Unit:      u.Unit,
			Quantity:  u.Quantity,
			Price:     u.Price,
			IsDefault: isDefault,
		}
	}

	if !defaultSeen && len(units) > 0 {
		units[0].IsDefault = true
	}

	return units
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter dto.ProductFilter) (resp dto.ProductListResponse, err error) {
	products, total, filtered, err := s.productRepo.GetProducts(ctx, filter, resultPerPage)
	if err != nil {
		return
	}

	resp.Products = products
	resp.ProductsCount = total
	resp.FilteredProductsCount = filtered
	resp.ResultPerPage = resultPerPage

	return resp, nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	return s.productRepo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, req dto.ProductRequest) (product domain.Product, err error) {
	product, err = s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.CuttedPrice > 0 {
		product.CuttedPrice = req.CuttedPrice
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.SubCategory != "" {
		product.SubCategory = req.SubCategory
	}
	if req.Stock >= 0 {
		product.Stock = req.Stock
	}
	if len(req.Units) > 0 {
		product.OrderConfig.Units = normalizeUnits(req.Units)
	}
	if len(req.Images) > 0 {
		product.Images = req.Images
	}

	err = s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	// Historical orders keep their own snapshots, so removing the catalog
	// entry never rewrites what a placed order shows.
	return s.productRepo.DeleteProduct(ctx, id)
}

func (s *ProductServiceImpl) UpsertReview(ctx context.Context, productID string, userID string, userName string, req dto.ReviewRequest) (product domain.Product, err error) {
	if req.Rating < 1 || req.Rating > 5 {
		return product, errs.ErrClient
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return product, errs.ErrNotLoggedIn
	}

	product, err = s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return
	}

	replaced := false
	for i := range product.Reviews {
		if product.Reviews[i].UserID == uid {
			product.Reviews[i].Rating = req.Rating
			product.Reviews[i].Comment = req.Comment
			replaced = true
			break
		}
	}

	if !replaced {
		product.Reviews = append(product.Reviews, domain.Review{
			ID:        primitive.NewObjectID(),
			UserID:    uid,
			Name:      userName,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: time.Now(),
		})
	}

	product.Ratings = meanRating(product.Reviews)
	product.NumOfReviews = int64(len(product.Reviews))

	err = s.productRepo.UpdateReviews(ctx, productID, product.Reviews, product.Ratings, product.NumOfReviews)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *ProductServiceImpl) DeleteReview(ctx context.Context, productID string, reviewID string) (product domain.Product, err error) {
	rid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return product, errs.ErrNotFound
	}

	product, err = s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return
	}

	remaining := make([]domain.Review, 0, len(product.Reviews))
	found := false
	for _, review := range product.Reviews {
		if review.ID == rid {
			found = true
			continue
		}
		remaining = append(remaining, review)
	}

	if !found {
		return domain.Product{}, errs.ErrNotFound
	}

	product.Reviews = remaining
	product.Ratings = meanRating(remaining)
	product.NumOfReviews = int64(len(remaining))

	err = s.productRepo.UpdateReviews(ctx, productID, product.Reviews, product.Ratings, product.NumOfReviews)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func meanRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum float64
	for _, review := range reviews {
		sum += review.Rating
	}

	return sum / float64(len(reviews))
}
