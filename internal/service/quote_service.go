package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/internal/repository"
	pkgdto "github.com/tradewell/storefront/pkg/dto"
	"github.com/tradewell/storefront/pkg/errs"
)

type QuoteServiceImpl struct {
	quoteRepo repository.QuoteRepository
}

func CreateQuoteService(quoteRepo repository.QuoteRepository) QuoteService {
	return &QuoteServiceImpl{quoteRepo: quoteRepo}
}

// CreateQuote accepts anonymous submissions; userID is empty when no
// session is present.
func (s *QuoteServiceImpl) CreateQuote(ctx context.Context, userID string, req dto.QuoteRequest) (quote domain.Quote, err error) {
	if len(req.Items) == 0 {
		return quote, errs.ErrClient
	}

	items := make([]domain.QuoteItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ProductName == "" || item.Quantity <= 0 {
			return quote, errs.ErrClient
		}
		items = append(items, domain.QuoteItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	now := time.Now()
	quote = domain.Quote{
		Items:     items,
		FileURL:   req.FileURL,
		Comment:   req.Comment,
		Status:    domain.QuoteStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if userID != "" {
		uid, idErr := primitive.ObjectIDFromHex(userID)
		if idErr == nil {
			quote.UserID = uid
		}
	}

	id, err := s.quoteRepo.AddQuote(ctx, quote)
	if err != nil {
		return domain.Quote{}, err
	}

	quote.ID = id
	return quote, nil
}

func (s *QuoteServiceImpl) GetQuotes(ctx context.Context, filter dto.QuoteFilter) (resp pkgdto.PaginationResponse, err error) {
	quotes, total, err := s.quoteRepo.GetQuotes(ctx, filter)
	if err != nil {
		return
	}

	resp.Records = quotes
	resp.Metadata.TotalCount = uint64(total)
	resp.Metadata.Page = filter.Page
	resp.Metadata.Limit = filter.Limit

	return resp, nil
}

func (s *QuoteServiceImpl) GetQuoteByID(ctx context.Context, id string) (quote domain.Quote, err error) {
	return s.quoteRepo.GetQuoteByID(ctx, id)
}

func (s *QuoteServiceImpl) UpdateQuoteStatus(ctx context.Context, id string, status string) (quote domain.Quote, err error) {
	if !domain.IsValidQuoteStatus(status) {
		return quote, errs.ErrInvalidQuoteStatus
	}

	if err = s.quoteRepo.UpdateQuoteStatus(ctx, id, status); err != nil {
		return
	}

	return s.quoteRepo.GetQuoteByID(ctx, id)
}

func (s *QuoteServiceImpl) DeleteQuote(ctx context.Context, id string) (err error) {
	return s.quoteRepo.DeleteQuote(ctx, id)
}
