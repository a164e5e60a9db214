package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	pkgdto "github.com/tradewell/storefront/pkg/dto"
	"github.com/tradewell/storefront/pkg/errs"
)

type fakeProductRepo struct {
	products map[primitive.ObjectID]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*domain.Product)}
}

func (r *fakeProductRepo) seed(p domain.Product) domain.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := p
	r.products[p.ID] = &cp
	return p
}

func (r *fakeProductRepo) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	cp := data
	r.products[data.ID] = &cp
	return data.ID, nil
}

func (r *fakeProductRepo) GetProducts(ctx context.Context, filter dto.ProductFilter, limit int) ([]domain.Product, int64, int64, error) {
	total := int64(len(r.products))

	var matched []domain.Product
	for _, p := range r.products {
		if filter.Keyword != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Keyword)) &&
			!strings.Contains(strings.ToLower(p.Category), strings.ToLower(filter.Keyword)) {
			continue
		}
		if gte, ok := parseFloatParam(filter.PriceGte); ok && p.Price < gte {
			continue
		}
		if lte, ok := parseFloatParam(filter.PriceLte); ok && p.Price > lte {
			continue
		}
		if gte, ok := parseFloatParam(filter.RatingsGte); ok && p.Ratings < gte {
			continue
		}
		matched = append(matched, *p)
	}

	filtered := int64(len(matched))

	if filter.Page > 0 && limit > 0 {
		start := (filter.Page - 1) * limit
		if start > len(matched) {
			start = len(matched)
		}
		end := start + limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	return matched, total, filtered, nil
}

func parseFloatParam(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrNotFound
	}
	p, ok := r.products[pid]
	if !ok {
		return domain.Product{}, errs.ErrNotFound
	}
	return *p, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, data domain.Product) error {
	p, ok := r.products[data.ID]
	if !ok {
		return errs.ErrNotFound
	}
	cp := data
	cp.Reviews = p.Reviews
	cp.Ratings = p.Ratings
	cp.NumOfReviews = p.NumOfReviews
	r.products[data.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}
	if _, ok := r.products[pid]; !ok {
		return errs.ErrNotFound
	}
	delete(r.products, pid)
	return nil
}

func (r *fakeProductRepo) DecrementStockGuarded(ctx context.Context, id string, qty int64) error {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}
	p, ok := r.products[pid]
	if !ok {
		return errs.ErrNotFound
	}
	if p.Stock < qty {
		return errs.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, id string, delta int64) error {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}
	p, ok := r.products[pid]
	if !ok {
		return errs.ErrNotFound
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	return nil
}

func (r *fakeProductRepo) UpdateReviews(ctx context.Context, id string, reviews []domain.Review, ratings float64, numOfReviews int64) error {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}
	p, ok := r.products[pid]
	if !ok {
		return errs.ErrNotFound
	}
	p.Reviews = reviews
	p.Ratings = ratings
	p.NumOfReviews = numOfReviews
	return nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (r *fakeOrderRepo) seed(o domain.Order) domain.Order {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	cp := o
	r.orders[o.ID] = &cp
	return o
}

func (r *fakeOrderRepo) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeOrderRepo) AddOrder(ctx context.Context, data domain.Order) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	cp := data
	r.orders[data.ID] = &cp
	return data.ID, nil
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, errs.ErrNotFound
	}
	o, ok := r.orders[oid]
	if !ok {
		return domain.Order{}, errs.ErrNotFound
	}
	return *o, nil
}

func (r *fakeOrderRepo) GetOrderByOrderNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return *o, nil
		}
	}
	return domain.Order{}, errs.ErrNotFound
}

func (r *fakeOrderRepo) UpdateOrder(ctx context.Context, data domain.Order) error {
	if _, ok := r.orders[data.ID]; !ok {
		return errs.ErrNotFound
	}
	cp := data
	r.orders[data.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}
	if _, ok := r.orders[oid]; !ok {
		return errs.ErrNotFound
	}
	delete(r.orders, oid)
	return nil
}

func (r *fakeOrderRepo) GetOrdersByUserID(ctx context.Context, userID string, filter pkgdto.Filter) ([]domain.Order, int64, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, 0, errs.ErrNotFound
	}
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == uid {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) SearchOrders(ctx context.Context, filter dto.OrderFilter) ([]domain.Order, int64, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.OrderStatus != filter.Status {
			continue
		}
		if filter.CustomerName != "" && !strings.Contains(strings.ToLower(o.Customer.Name), strings.ToLower(filter.CustomerName)) {
			continue
		}
		if filter.PaymentMethod != "" && o.PaymentInfo.Method != filter.PaymentMethod {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) GetExpiredPendingOrders(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.PaymentInfo.Status == domain.PaymentStatusPending &&
			o.OrderStatus == domain.OrderStatusProcessing &&
			o.CreatedAt.Before(cutoff) {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) seed(u domain.User) domain.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := u
	r.users[u.ID] = &cp
	return u
}

func (r *fakeUserRepo) AddUser(ctx context.Context, data domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == data.Email {
			return primitive.NilObjectID, errs.ErrEmailAlreadyUsed
		}
	}
	data.ID = primitive.NewObjectID()
	cp := data
	r.users[data.ID] = &cp
	return data.ID, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return domain.User{}, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	uid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, errs.ErrNotFound
	}
	u, ok := r.users[uid]
	if !ok {
		return domain.User{}, errs.ErrNotFound
	}
	return *u, nil
}

func (r *fakeUserRepo) GetUserByResetToken(ctx context.Context, token string) (domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken == token && token != "" {
			return *u, nil
		}
	}
	return domain.User{}, errs.ErrTokenExpired
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, data domain.User) error {
	if _, ok := r.users[data.ID]; !ok {
		return errs.ErrAccountNotFound
	}
	cp := data
	r.users[data.ID] = &cp
	return nil
}

type fakeQuoteRepo struct {
	quotes map[primitive.ObjectID]*domain.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[primitive.ObjectID]*domain.Quote)}
}

func (r *fakeQuoteRepo) AddQuote(ctx context.Context, data domain.Quote) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	cp := data
	r.quotes[data.ID] = &cp
	return data.ID, nil
}

func (r *fakeQuoteRepo) GetQuotes(ctx context.Context, filter dto.QuoteFilter) ([]domain.Quote, int64, error) {
	var out []domain.Quote
	for _, q := range r.quotes {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (r *fakeQuoteRepo) GetQuoteByID(ctx context.Context, id string) (domain.Quote, error) {
	qid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Quote{}, errs.ErrNotFound
	}
	q, ok := r.quotes[qid]
	if !ok {
		return domain.Quote{}, errs.ErrNotFound
	}
	return *q, nil
}

func (r *fakeQuoteRepo) UpdateQuoteStatus(ctx context.Context, id string, status string) error {
	qid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}
	q, ok := r.quotes[qid]
	if !ok {
		return errs.ErrNotFound
	}
	q.Status = status
	return nil
}

func (r *fakeQuoteRepo) DeleteQuote(ctx context.Context, id string) error {
	qid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrNotFound
	}
	if _, ok := r.quotes[qid]; !ok {
		return errs.ErrNotFound
	}
	delete(r.quotes, qid)
	return nil
}
