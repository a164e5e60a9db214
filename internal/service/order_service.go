package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"gopkg.in/gomail.v2"

	"github.com/tradewell/storefront/config"
	"github.com/tradewell/storefront/internal/domain"
	"github.com/tradewell/storefront/internal/dto"
	"github.com/tradewell/storefront/internal/repository"
	pkgdto "github.com/tradewell/storefront/pkg/dto"
	"github.com/tradewell/storefront/pkg/errs"
	"github.com/tradewell/storefront/pkg/utils"
)

type OrderServiceImpl struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	kafkaProducer  *kafka.Conn
	midtransClient *coreapi.Client
	mailBreaker    *gobreaker.CircuitBreaker[[]byte]
	config         *config.Config
}

func CreateOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, kafkaProducer *kafka.Conn, midtransClient *coreapi.Client, mailBreaker *gobreaker.CircuitBreaker[[]byte], config *config.Config) OrderService {
	return &OrderServiceImpl{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		kafkaProducer:  kafkaProducer,
		midtransClient: midtransClient,
		mailBreaker:    mailBreaker,
		config:         config,
	}
}

// CreateOrder decrements stock and persists the order inside one
// transaction, so a failed line item never leaves a half-placed order
// behind. Confirmation email and the admin broadcast run after commit and
// never affect the result.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, userID string, req dto.OrderRequest) (order domain.Order, err error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	if len(req.OrderItems) == 0 {
		return order, errs.ErrClient
	}

	now := time.Now()

	orderItems := make([]domain.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		if item.Quantity <= 0 {
			return order, errs.ErrClient
		}

		product, prodErr := s.productRepo.GetProductByID(ctx, item.ProductID)
		if prodErr != nil {
			return order, prodErr
		}

		orderItems = append(orderItems, snapshotOrderItem(product, item))
	}

	order = domain.Order{
		OrderNumber:   ulid.Make().String(),
		UserID:        user.ID,
		Customer:      domain.Customer{Name: user.Name, Email: user.Email},
		ShippingInfo:  domain.ShippingInfo(req.ShippingInfo),
		OrderItems:    orderItems,
		PaymentInfo:   domain.PaymentInfo(req.PaymentInfo),
		ItemsPrice:    req.ItemsPrice,
		ShippingPrice: req.ShippingPrice,
		Discount:      req.Discount,
		TotalPrice:    req.TotalPrice,
		OrderStatus:   domain.OrderStatusProcessing,
		IsSampleOrder: req.IsSampleOrder,
		PaidAt:        &now,
		TrackingEvents: []domain.TrackingEvent{
			newTrackingEvent(domain.TrackingStatusOrderPlaced, "", "", now),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.orderRepo.HandleTrx(ctx, func(trxCtx context.Context) error {
		for _, item := range order.OrderItems {
			if decErr := s.productRepo.DecrementStockGuarded(trxCtx, item.ProductID.Hex(), item.Quantity); decErr != nil {
				return decErr
			}
		}

		orderID, addErr := s.orderRepo.AddOrder(trxCtx, order)
		if addErr != nil {
			return addErr
		}

		order.ID = orderID
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	go s.sendOrderConfirmationEmail(order)
	go s.broadcastEvent(dto.EventNewOrder, order)

	return order, nil
}

func snapshotOrderItem(product domain.Product, item dto.OrderItemRequest) domain.OrderItem {
	price := product.Price
	unit := item.Unit
	for _, u := range product.OrderConfig.Units {
		if unit == "" && u.IsDefault {
			unit = u.Unit
			price = u.Price
			break
		}
		if u.Unit == unit {
			price = u.Price
			break
		}
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0].URL
	}

	return domain.OrderItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     price,
		Image:     image,
		Quantity:  item.Quantity,
		Unit:      unit,
	}
}

func newTrackingEvent(status string, location string, description string, ts time.Time) domain.TrackingEvent {
	if description == "" {
		description = fmt.Sprintf("%s - %s", status, ts.Format(time.RFC3339))
	}

	return domain.TrackingEvent{
		Status:      status,
		Location:    location,
		Description: description,
		Timestamp:   ts,
	}
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, id string) (order domain.Order, err error) {
	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *OrderServiceImpl) GetMyOrders(ctx context.Context, userID string, filter pkgdto.Filter) (resp dto.OrderListResponse, err error) {
	orders, total, err := s.orderRepo.GetOrdersByUserID(ctx, userID, filter)
	if err != nil {
		return
	}

	resp.Orders = orders
	resp.TotalCount = total
	resp.Page = filter.Page
	resp.Limit = filter.Limit

	return resp, nil
}

func (s *OrderServiceImpl) SearchOrders(ctx context.Context, filter dto.OrderFilter) (resp dto.OrderListResponse, err error) {
	orders, total, err := s.orderRepo.SearchOrders(ctx, filter)
	if err != nil {
		return
	}

	resp.Orders = orders
	resp.TotalCount = total
	resp.Page = filter.Page
	resp.Limit = filter.Limit

	return resp, nil
}

// UpdateOrderStatus applies a status transition plus any shipment metadata
// in one go, appending the matching tracking event. Terminal orders reject
// further transitions.
func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, id string, req dto.UpdateOrderStatusRequest) (order domain.Order, err error) {
	order, err = s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if req.Status != "" {
		if !domain.IsValidTrackingStatus(req.Status) {
			return domain.Order{}, errs.ErrInvalidTrackingStatus
		}

		if domain.IsTerminalOrderStatus(order.OrderStatus) && req.Status != order.OrderStatus {
			return domain.Order{}, errs.ErrOrderAlreadyFinal
		}

		if err = s.restockOnCancel(ctx, &order, req.Status); err != nil {
			return domain.Order{}, err
		}

		now := time.Now()
		applyStatus(&order, req.Status, now)
		order.TrackingEvents = append(order.TrackingEvents, newTrackingEvent(req.Status, req.Location, req.Description, now))
	}

	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.TrackingURL != "" {
		order.TrackingURL = req.TrackingURL
	}
	if req.ConsignmentNumber != "" {
		order.ConsignmentNumber = req.ConsignmentNumber
	}
	if req.VRLInvoiceLink != "" {
		order.VRLInvoiceLink = req.VRLInvoiceLink
	}

	err = s.orderRepo.UpdateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	go s.broadcastTrackingUpdate(order, req.Status)

	return order, nil
}

// applyStatus moves the order to the given tracking status. "Order Placed"
// is append-only and never changes orderStatus.
func applyStatus(order *domain.Order, status string, now time.Time) {
	if status == domain.TrackingStatusOrderPlaced {
		return
	}

	order.OrderStatus = status

	switch status {
	case domain.OrderStatusShipped:
		if order.ShippedAt == nil {
			order.ShippedAt = &now
		}
	case domain.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	}
}

func (s *OrderServiceImpl) AddTrackingEvent(ctx context.Context, id string, req dto.TrackingEventRequest) (order domain.Order, err error) {
	order, err = s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if !domain.IsValidTrackingStatus(req.Status) {
		return domain.Order{}, errs.ErrInvalidTrackingStatus
	}

	if domain.IsTerminalOrderStatus(order.OrderStatus) && req.Status != order.OrderStatus && req.Status != domain.TrackingStatusOrderPlaced {
		return domain.Order{}, errs.ErrOrderAlreadyFinal
	}

	if err = s.restockOnCancel(ctx, &order, req.Status); err != nil {
		return domain.Order{}, err
	}

	now := time.Now()
	applyStatus(&order, req.Status, now)
	order.TrackingEvents = append(order.TrackingEvents, newTrackingEvent(req.Status, req.Location, req.Description, now))

	err = s.orderRepo.UpdateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	go s.broadcastTrackingUpdate(order, req.Status)

	return order, nil
}

// DeleteOrder removes the order, restoring the line-item quantities first
// unless the goods were already delivered or a previous cancellation
// restocked them.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id string) (err error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if order.OrderStatus != domain.OrderStatusDelivered && !order.StockRestored {
		if err = s.restockOrderItems(ctx, order); err != nil {
			return err
		}
	}

	return s.orderRepo.DeleteOrder(ctx, id)
}

// restockOnCancel puts the line items back when an order moves to Cancelled,
// at most once per order.
func (s *OrderServiceImpl) restockOnCancel(ctx context.Context, order *domain.Order, newStatus string) error {
	if newStatus != domain.OrderStatusCancelled || order.StockRestored {
		return nil
	}

	if err := s.restockOrderItems(ctx, *order); err != nil {
		return err
	}

	order.StockRestored = true
	return nil
}

func (s *OrderServiceImpl) restockOrderItems(ctx context.Context, order domain.Order) error {
	for _, item := range order.OrderItems {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID.Hex(), item.Quantity); err != nil {
			if err == errs.ErrNotFound {
				// The product was removed from the catalog; nothing to
				// restore for this line item.
				continue
			}
			return err
		}
	}

	return nil
}

func (s *OrderServiceImpl) MidtransPaymentWebhook(ctx context.Context, req dto.PaymentNotification) (err error) {
	order, err := s.orderRepo.GetOrderByOrderNumber(ctx, req.OrderID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MidtransPaymentWebhook").Str("order_number", req.OrderID).Msg("")
		return
	}

	// Never trust the notification body alone; ask the gateway what it
	// thinks the transaction status is.
	transactionStatus := req.TransactionStatus
	if s.midtransClient != nil {
		statusResp, checkErr := s.midtransClient.CheckTransaction(req.OrderID)
		if checkErr != nil {
			log.Ctx(ctx).Error().Err(checkErr).Str("component", "MidtransPaymentWebhook").Msg("")
			return errs.ErrInternalServer
		}
		transactionStatus = statusResp.TransactionStatus
	}

	switch transactionStatus {
	case "settlement", "capture":
		now := time.Now()
		order.PaymentInfo.Status = domain.PaymentStatusPaid
		if order.PaymentInfo.TransactionID == "" {
			order.PaymentInfo.TransactionID = req.TransactionID
		}
		if order.PaidAt == nil {
			order.PaidAt = &now
		}
	case "expire":
		if order.PaymentInfo.Status == domain.PaymentStatusPaid {
			return errs.ErrConflict
		}
		order.PaymentInfo.Status = domain.PaymentStatusExpired
	default:
		return nil
	}

	return s.orderRepo.UpdateOrder(ctx, order)
}

// ExpireUnpaidOrders cancels pending-payment orders older than the expiry
// window and puts their stock back. Runs on a schedule.
func (s *OrderServiceImpl) ExpireUnpaidOrders() {
	ctx := context.Background()
	log.Info().Str("component", "ExpireUnpaidOrders").Msg("sweep starts")

	cutoff := time.Now().Add(-time.Duration(s.config.PaymentExpiry) * time.Minute)
	orders, err := s.orderRepo.GetExpiredPendingOrders(ctx, cutoff)
	if err != nil {
		return
	}

	for _, order := range orders {
		if !order.StockRestored {
			if err := s.restockOrderItems(ctx, order); err != nil {
				log.Error().Err(err).Str("component", "ExpireUnpaidOrders").Str("order", order.ID.Hex()).Msg("")
				continue
			}
		}

		now := time.Now()
		order.OrderStatus = domain.OrderStatusCancelled
		order.PaymentInfo.Status = domain.PaymentStatusExpired
		order.StockRestored = true
		order.TrackingEvents = append(order.TrackingEvents, newTrackingEvent(domain.OrderStatusCancelled, "", "Payment window elapsed", now))

		if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
			log.Error().Err(err).Str("component", "ExpireUnpaidOrders").Str("order", order.ID.Hex()).Msg("")
			continue
		}

		go s.broadcastTrackingUpdate(order, domain.OrderStatusCancelled)
	}

	log.Info().Str("component", "ExpireUnpaidOrders").Msg("sweep ends")
}

func (s *OrderServiceImpl) broadcastTrackingUpdate(order domain.Order, status string) {
	s.broadcastEvent(dto.EventTrackingUpdated, dto.TrackingUpdatedEvent{
		OrderID:     order.ID.Hex(),
		OrderStatus: order.OrderStatus,
		Status:      status,
	})
}

// broadcastEvent pushes a best-effort notification to connected admin
// dashboards. Delivery failures are logged, never surfaced.
func (s *OrderServiceImpl) broadcastEvent(eventType string, data interface{}) {
	if s.kafkaProducer == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Error().Err(err).Str("component", "broadcastEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err = s.writeKafkaMessage(jsonMsg)
		if err == nil {
			return
		}
		log.Error().Err(err).Str("component", "broadcastEvent").Msg("")
		time.Sleep(time.Second * time.Duration(i+1)) // Exponential backoff
	}

	log.Error().Err(err).Str("component", "broadcastEvent").Msgf("dropping %s event after %d attempts", eventType, maxRetries)
}

func (s *OrderServiceImpl) writeKafkaMessage(msg []byte) error {
	_, err := s.kafkaProducer.WriteMessages(
		kafka.Message{
			Value: msg,
		},
	)
	return err
}

func (s *OrderServiceImpl) sendOrderConfirmationEmail(order domain.Order) {
	if s.config.SMTPConfig.Host == "" {
		return
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPConfig.Sender)
	message.SetHeader("To", order.Customer.Email)
	message.SetHeader("Subject", fmt.Sprintf("Order %s confirmed", order.OrderNumber))
	message.SetBody("text/html", buildOrderConfirmationBody(order))

	_, err := s.mailBreaker.Execute(func() ([]byte, error) {
		return nil, utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port)
	})
	if err != nil {
		log.Error().Err(err).Str("component", "sendOrderConfirmationEmail").Str("order", order.OrderNumber).Msg("")
	}
}

func buildOrderConfirmationBody(order domain.Order) string {
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your order <b>%s</b> placed on %s has been received.</p><ul>",
		order.Customer.Name, order.OrderNumber, utils.ConvertDateTimeToHumanReadableFormat(order.CreatedAt))

	for _, item := range order.OrderItems {
		body += fmt.Sprintf("<li>%s x %d (%s) - %.2f</li>", item.Name, item.Quantity, item.Unit, item.Price)
	}

	body += fmt.Sprintf("</ul><p>Total: %.2f</p>", order.TotalPrice)

	return body
}
