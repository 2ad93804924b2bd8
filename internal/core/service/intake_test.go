package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"github.com/tiendago/orders/internal/core/port/mock"
	"github.com/tiendago/orders/internal/core/service"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier)

func testShopper() *domain.Shopper {
	return &domain.Shopper{ID: 1, Email: "shopper@example.com"}
}

func testRequest() *domain.OrderRequest {
	return &domain.OrderRequest{
		ShopperID: 1,
		Items: []domain.OrderItem{
			{ProductRef: "p1", Quantity: 2, UnitPrice: decimal.MustParse("10")},
		},
		TotalAmount:   decimal.MustParse("20"),
		PaymentMethod: domain.PaymentMethodMercadoPago,
		Shipping:      domain.ShippingInfo{Name: "Ana", Address: "Calle 1", Phone: "555"},
	}
}

func expectSweep(repo *mock.MockRepository, swept int64) {
	repo.EXPECT().
		CancelStaleOrders(gomock.Any(), uint64(1), gomock.Any(), gomock.Any(), "abandoned").
		Return(swept, nil)
}

// Notifications run in a goroutine after the response; they may or may not
// land before the test finishes.
func allowNotifications(notifier *mock.MockNotifier) {
	notifier.EXPECT().NotifyCustomer(gomock.Any(), port.NotificationOrderReceived, gomock.Any()).
		Return(nil).AnyTimes()
	notifier.EXPECT().NotifyMerchant(gomock.Any(), port.NotificationOrderReceived, gomock.Any()).
		Return(nil).AnyTimes()
}

func TestService_PlaceOrder(t *testing.T) {
	logger, _ := zap.NewProduction()

	type placeOrderTest struct {
		name        string
		req         func() *domain.OrderRequest
		mock        prepareMocks
		expError    error
		expOrderID  string
		expCheckout string
	}

	existing := &domain.Order{
		ID:             "11111111-1111-4111-8111-111111111111",
		ShopperID:      1,
		Status:         domain.OrderStatusPending,
		IdempotencyKey: "K1",
		TotalAmount:    decimal.MustParse("20"),
		Items:          testRequest().Items,
		PaymentMethod:  domain.PaymentMethodMercadoPago,
		CreatedAt:      time.Now(),
	}

	tests := []placeOrderTest{
		{
			name: "new gateway order",
			req:  testRequest,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				expectSweep(repo, 0)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						assert.Equal(t, domain.OrderStatusPending, o.Status)
						assert.NotEmpty(t, o.ID)
						return o, nil
					})
				gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).
					Return(&port.Preference{ID: "pref-1", CheckoutURL: "https://pay/pref-1"}, nil)
				allowNotifications(notifier)
			},
			expCheckout: "https://pay/pref-1",
		},
		{
			name: "new whatsapp order skips gateway",
			req: func() *domain.OrderRequest {
				r := testRequest()
				r.PaymentMethod = domain.PaymentMethodWhatsApp
				return r
			},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				expectSweep(repo, 0)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						assert.Equal(t, domain.OrderStatusPendingWhatsApp, o.Status)
						return o, nil
					})
				allowNotifications(notifier)
			},
		},
		{
			name: "retried submission reuses order by idempotency key",
			req: func() *domain.OrderRequest {
				r := testRequest()
				r.IdempotencyKey = "K1"
				return r
			},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				expectSweep(repo, 0)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().ReadOrderByIdempotencyKey(gomock.Any(), uint64(1), "K1").
					Return(existing, nil)
				gateway.EXPECT().CreatePreference(gomock.Any(), existing).
					Return(&port.Preference{ID: "pref-2", CheckoutURL: "https://pay/pref-2"}, nil)
			},
			expOrderID:  existing.ID,
			expCheckout: "https://pay/pref-2",
		},
		{
			name: "double click merges into recent candidate",
			req:  testRequest,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				candidate := *existing
				candidate.IdempotencyKey = ""
				expectSweep(repo, 0)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(&candidate, nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						assert.Equal(t, existing.ID, o.ID)
						return o, nil
					})
				gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).
					Return(&port.Preference{ID: "pref-3", CheckoutURL: "https://pay/pref-3"}, nil)
				allowNotifications(notifier)
			},
			expOrderID:  existing.ID,
			expCheckout: "https://pay/pref-3",
		},
		{
			name: "merge retries after losing the version race",
			req:  testRequest,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				stale := *existing
				stale.IdempotencyKey = ""
				stale.Version = 1
				fresh := stale
				fresh.Version = 2
				expectSweep(repo, 0)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(&stale, nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrStaleOrderVersion)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(&fresh, nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						assert.Equal(t, existing.ID, o.ID)
						assert.Equal(t, int64(2), o.Version)
						return o, nil
					})
				gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).
					Return(&port.Preference{ID: "pref-5", CheckoutURL: "https://pay/pref-5"}, nil)
				allowNotifications(notifier)
			},
			expOrderID:  existing.ID,
			expCheckout: "https://pay/pref-5",
		},
		{
			name: "merge surfaces a conflict after repeated version races",
			req:  testRequest,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				candidate := *existing
				candidate.IdempotencyKey = ""
				second := candidate
				expectSweep(repo, 0)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(&candidate, nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrStaleOrderVersion)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(&second, nil)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrStaleOrderVersion)
			},
			expError: domain.ErrConflictingData,
		},
		{
			name: "gateway failure cancels the order",
			req:  testRequest,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				expectSweep(repo, 0)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
				gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).
					Return(nil, assert.AnError)
				repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						assert.Equal(t, domain.OrderStatusCancelled, o.Status)
						assert.NotEmpty(t, o.CancelReason)
						assert.Len(t, o.PaymentAudit, 1)
						return o, nil
					})
			},
			expError: domain.ErrPaymentGateway,
		},
		{
			name: "unknown payment method",
			req: func() *domain.OrderRequest {
				r := testRequest()
				r.PaymentMethod = "pigeon"
				return r
			},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				expectSweep(repo, 0)
			},
			expError: domain.ErrPaymentMethodUnknown,
		},
		{
			name: "total does not match line items",
			req: func() *domain.OrderRequest {
				r := testRequest()
				r.TotalAmount = decimal.MustParse("25")
				return r
			},
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				expectSweep(repo, 0)
			},
			expError: domain.ErrOrderAmountMismatch,
		},
		{
			name: "stale orders swept before anything else",
			req:  testRequest,
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				expectSweep(repo, 2)
				repo.EXPECT().ReadShopper(gomock.Any(), uint64(1)).Return(testShopper(), nil)
				repo.EXPECT().FindRecentPending(gomock.Any(), uint64(1), gomock.Any(), []string{"p1"}, gomock.Any()).
					Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
				gateway.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).
					Return(&port.Preference{ID: "pref-4", CheckoutURL: "https://pay/pref-4"}, nil)
				allowNotifications(notifier)
			},
			expCheckout: "https://pay/pref-4",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			defer mockCtrl.Finish()

			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			gateway := mock.NewMockPaymentGateway(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(repo, gateway, notifier)

			s, err := service.NewService(repo, ts, gateway, notifier, logger)
			assert.NoError(t, err)

			receipt, err := s.PlaceOrder(context.Background(), test.req())

			assert.ErrorIs(t, err, test.expError)
			if test.expError != nil {
				assert.Nil(t, receipt)
				return
			}
			assert.NotNil(t, receipt)
			assert.NotEmpty(t, receipt.OrderID)
			if test.expOrderID != "" {
				assert.Equal(t, test.expOrderID, receipt.OrderID)
			}
			assert.Equal(t, test.expCheckout, receipt.CheckoutURL)
		})
	}
}
