package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
	testhelpers "github.com/polkiloo/eatsprint/internal/test"
	"github.com/polkiloo/eatsprint/internal/usecase"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type orderFixture struct {
	uc        *usecase.OrderUseCase
	orders    *testhelpers.OrderRepositoryStub
	gateway   *testhelpers.GatewayStub
	publisher *testhelpers.PublisherStub
}

func newOrderFixture(seed ...model.Order) orderFixture {
	f := orderFixture{
		orders:    testhelpers.NewOrderRepositoryStub(seed...),
		gateway:   &testhelpers.GatewayStub{},
		publisher: &testhelpers.PublisherStub{},
	}
	seq := 0
	f.uc = usecase.NewOrderUseCase(f.orders, f.gateway, f.publisher, usecase.OrderOptions{
		FrontendURL: "https://shop.example.com/",
		Now:         func() time.Time { return fixedNow },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
	return f
}

func placementInput(method string) usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		Items: []model.LineItem{{Name: "Pizza", UnitPrice: 50000, Quantity: 2}},
		Address: model.Address{
			FirstName: "Asha", LastName: "Rao", Street: "1 MG Road", City: "Pune",
			State: "MH", Zipcode: "411001", Country: "India", Phone: "9999999999",
			Email: "asha@example.com",
		},
		PaymentMethod: method,
	}
}

func TestOrderUseCasePlaceCOD(t *testing.T) {
	f := newOrderFixture()

	res, err := f.uc.Place(context.Background(), 7, placementInput("cod"))
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	if res.SessionURL != "" {
		t.Fatalf("cod order must not get a session url, got %q", res.SessionURL)
	}

	stored, ok := f.orders.Snapshot(res.Order.ID)
	if !ok {
		t.Fatal("expected order to be stored")
	}
	if stored.UserID != 7 || stored.Status != model.OrderStatusCODPending || stored.Payment {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
	if stored.Amount.String() != "1000.00" {
		t.Fatalf("expected amount 1000.00, got %s", stored.Amount)
	}
	if !stored.Date.Equal(fixedNow) {
		t.Fatalf("unexpected order date %v", stored.Date)
	}
	if len(f.gateway.Calls) != 0 {
		t.Fatal("gateway must not be called for cod orders")
	}
	if types := f.publisher.Types(); len(types) != 1 || types[0] != model.OrderEventPlaced {
		t.Fatalf("expected one placed event, got %v", types)
	}
}

func TestOrderUseCasePlaceOnline(t *testing.T) {
	f := newOrderFixture()
	f.gateway.URL = "https://checkout.stripe.test/c/pay"

	res, err := f.uc.Place(context.Background(), 7, placementInput(""))
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	if res.SessionURL != "https://checkout.stripe.test/c/pay" {
		t.Fatalf("unexpected session url %q", res.SessionURL)
	}

	stored, ok := f.orders.Snapshot(res.Order.ID)
	if !ok || stored.Payment || stored.Status != model.OrderStatusAwaitingPayment || stored.PaymentMethod != model.PaymentMethodOnline {
		t.Fatalf("unexpected stored order: %+v (found=%v)", stored, ok)
	}

	if len(f.gateway.Calls) != 1 {
		t.Fatalf("expected one gateway call, got %d", len(f.gateway.Calls))
	}
	call := f.gateway.Calls[0]
	if call.SuccessURL != "https://shop.example.com/verify?success=true&orderId=id-1" {
		t.Fatalf("unexpected success url %q", call.SuccessURL)
	}
	if call.CancelURL != "https://shop.example.com/verify?success=false&orderId=id-1" {
		t.Fatalf("unexpected cancel url %q", call.CancelURL)
	}
	if len(call.Items) != 1 || call.Items[0].UnitPrice != 50000 {
		t.Fatalf("unexpected gateway items %+v", call.Items)
	}
	if len(f.publisher.Events()) != 0 {
		t.Fatal("unpaid online order must not publish events")
	}
}

func TestOrderUseCasePlaceGatewayDisabled(t *testing.T) {
	f := newOrderFixture()
	f.gateway.Disabled = true

	if _, err := f.uc.Place(context.Background(), 7, placementInput("online")); !errors.Is(err, domainErrors.ErrPaymentUnavailable) {
		t.Fatalf("expected payment unavailable, got %v", err)
	}
	if _, ok := f.orders.Snapshot("id-1"); ok {
		t.Fatal("expected order to be removed when gateway is disabled")
	}
	if len(f.gateway.Calls) != 0 {
		t.Fatal("disabled gateway must not be called")
	}

	res, err := f.uc.Place(context.Background(), 7, placementInput("cod"))
	if err != nil || res.Order.Status != model.OrderStatusCODPending {
		t.Fatalf("cod must keep working without gateway: %v", err)
	}
}

func TestOrderUseCasePlaceWithoutGateway(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(orders, nil, nil, usecase.OrderOptions{})

	if _, err := uc.Place(context.Background(), 1, placementInput("online")); !errors.Is(err, domainErrors.ErrPaymentUnavailable) {
		t.Fatalf("expected payment unavailable, got %v", err)
	}
	if len(orders.Deleted) != 1 {
		t.Fatalf("expected compensating delete, got %v", orders.Deleted)
	}
}

func TestOrderUseCasePlaceSessionFailure(t *testing.T) {
	f := newOrderFixture()
	gatewayErr := errors.New("stripe: card network down")
	f.gateway.Err = gatewayErr

	ctx, cancel := context.WithCancel(context.Background())
	deleteCtxErr := errors.New("unset")
	f.orders.DeleteUnpaidFn = func(dctx context.Context, id string) (bool, error) {
		cancel()
		deleteCtxErr = dctx.Err()
		return true, nil
	}

	_, err := f.uc.Place(ctx, 7, placementInput("online"))
	if !errors.Is(err, domainErrors.ErrPaymentSession) || !errors.Is(err, gatewayErr) {
		t.Fatalf("expected wrapped session error, got %v", err)
	}
	if deleteCtxErr != nil {
		t.Fatalf("compensating delete must not observe request cancellation, got %v", deleteCtxErr)
	}
}

func TestOrderUseCasePlaceRejectsInvalidInput(t *testing.T) {
	f := newOrderFixture()
	f.orders.CreateFn = func(context.Context, *model.Order) error {
		t.Fatal("create should not be called for invalid input")
		return nil
	}

	in := placementInput("cod")
	in.Items = nil
	if _, err := f.uc.Place(context.Background(), 1, in); !errors.Is(err, domainErrors.ErrInvalidOrder) {
		t.Fatalf("expected invalid order, got %v", err)
	}
}

func TestOrderUseCasePlacePropagatesCreateError(t *testing.T) {
	f := newOrderFixture()
	f.orders.CreateFn = func(context.Context, *model.Order) error { return errors.New("db down") }

	if _, err := f.uc.Place(context.Background(), 1, placementInput("online")); err == nil || err.Error() != "db down" {
		t.Fatalf("expected repository error, got %v", err)
	}
	if len(f.gateway.Calls) != 0 {
		t.Fatal("gateway must not be called when persisting fails")
	}
}

func onlineOrder(id string, userID int64) model.Order {
	o := testhelpers.SampleOrder(id, userID)
	o.PaymentMethod = model.PaymentMethodOnline
	o.Status = model.OrderStatusAwaitingPayment
	return o
}

func TestOrderUseCaseVerifySuccessIsIdempotent(t *testing.T) {
	f := newOrderFixture(onlineOrder("o1", 1))

	paid, err := f.uc.Verify(context.Background(), "o1", true)
	if err != nil || !paid {
		t.Fatalf("expected paid, got %v %v", paid, err)
	}
	stored, _ := f.orders.Snapshot("o1")
	if !stored.Payment {
		t.Fatal("expected payment flag to be set")
	}

	paid, err = f.uc.Verify(context.Background(), "o1", true)
	if err != nil || !paid {
		t.Fatalf("expected repeated verify to succeed, got %v %v", paid, err)
	}
	if types := f.publisher.Types(); len(types) != 1 || types[0] != model.OrderEventPaymentConfirmed {
		t.Fatalf("expected single confirmation event, got %v", types)
	}
	if stored, _ := f.orders.Snapshot("o1"); stored.Status != model.OrderStatusConfirmed {
		t.Fatalf("expected paid order to be confirmed, got %q", stored.Status)
	}
}

func TestOrderUseCaseVerifySuccessErrors(t *testing.T) {
	f := newOrderFixture(testhelpers.SampleOrder("cod", 1))

	if _, err := f.uc.Verify(context.Background(), "cod", true); !errors.Is(err, domainErrors.ErrNotAwaitingPayment) {
		t.Fatalf("expected not awaiting payment for cod order, got %v", err)
	}
	if _, err := f.uc.Verify(context.Background(), "missing", true); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.uc.Verify(context.Background(), "  ", true); !errors.Is(err, domainErrors.ErrInvalidOrder) {
		t.Fatalf("expected invalid order for empty id, got %v", err)
	}
}

func TestOrderUseCaseVerifyFailureDeletes(t *testing.T) {
	f := newOrderFixture(onlineOrder("o1", 1))

	paid, err := f.uc.Verify(context.Background(), "o1", false)
	if err != nil || paid {
		t.Fatalf("expected not paid without error, got %v %v", paid, err)
	}
	if _, err := f.orders.GetByID(context.Background(), "o1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected order to be gone, got %v", err)
	}

	if _, err := f.uc.Verify(context.Background(), "o1", false); err != nil {
		t.Fatalf("repeated failure callback should be a no-op, got %v", err)
	}
	if len(f.publisher.Events()) != 0 {
		t.Fatal("declined payment must not publish events")
	}
}

func TestOrderUseCaseVerifyFailureKeepsSettledOrders(t *testing.T) {
	paid := onlineOrder("paid", 1)
	paid.Payment = true
	f := newOrderFixture(paid, testhelpers.SampleOrder("cod", 1))

	for _, id := range []string{"paid", "cod"} {
		if _, err := f.uc.Verify(context.Background(), id, false); !errors.Is(err, domainErrors.ErrNotAwaitingPayment) {
			t.Fatalf("order %s: expected not awaiting payment, got %v", id, err)
		}
		if _, ok := f.orders.Snapshot(id); !ok {
			t.Fatalf("order %s must survive a failure callback", id)
		}
	}
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	o := testhelpers.SampleOrder("o1", 1)
	o.Status = model.OrderStatusOutForDelivery
	f := newOrderFixture(o)

	updated, err := f.uc.UpdateStatus(context.Background(), "o1", " Delivered ")
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Status != model.OrderStatusDelivered {
		t.Fatalf("unexpected status %q", updated.Status)
	}

	events := f.publisher.Events()
	if len(events) != 1 || events[0].Type != model.OrderEventStatusChanged || events[0].PreviousStatus != model.OrderStatusOutForDelivery {
		t.Fatalf("unexpected events %+v", events)
	}
	if events[0].ID == "" || !events[0].OccurredAt.Equal(fixedNow) {
		t.Fatalf("event metadata not populated: %+v", events[0])
	}

	// Admin updates are unconditional.
	if _, err := f.uc.UpdateStatus(context.Background(), "o1", "Food Processing"); err != nil {
		t.Fatalf("backward transition should be accepted, got %v", err)
	}
}

func TestOrderUseCaseUpdateStatusErrors(t *testing.T) {
	f := newOrderFixture(testhelpers.SampleOrder("o1", 1))

	if _, err := f.uc.UpdateStatus(context.Background(), "o1", "  "); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := f.uc.UpdateStatus(context.Background(), "missing", "Delivered"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.publisher.Events()) != 0 {
		t.Fatal("failed updates must not publish events")
	}
}

func TestOrderUseCaseCancelByStatus(t *testing.T) {
	cases := []struct {
		status model.OrderStatus
		ok     bool
	}{
		{model.OrderStatusCODPending, true},
		{model.OrderStatusFoodProcessing, true},
		{model.OrderStatusAwaitingPayment, true},
		{"Order Placed", true},
		{model.OrderStatusConfirmed, false},
		{model.OrderStatusOutForDelivery, false},
		{model.OrderStatusDelivered, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			o := testhelpers.SampleOrder("o1", 1)
			o.Status = tc.status
			f := newOrderFixture(o)

			_, err := f.uc.Cancel(context.Background(), 1, "o1")
			stored, _ := f.orders.Snapshot("o1")
			if tc.ok {
				if err != nil || stored.Status != model.OrderStatusCancelled {
					t.Fatalf("expected cancellation, got err=%v status=%q", err, stored.Status)
				}
				events := f.publisher.Events()
				if len(events) != 1 || events[0].Type != model.OrderEventCancelled || events[0].PreviousStatus != tc.status {
					t.Fatalf("unexpected events %+v", events)
				}
				return
			}
			if !errors.Is(err, domainErrors.ErrNotCancellable) {
				t.Fatalf("expected not cancellable, got %v", err)
			}
			if stored.Status != tc.status {
				t.Fatalf("status must stay %q, got %q", tc.status, stored.Status)
			}
		})
	}
}

func TestOrderUseCasePaymentAndCancellation(t *testing.T) {
	cases := []struct {
		name        string
		steps       func(f orderFixture) error
		wantErr     error
		wantStatus  model.OrderStatus
		wantPayment bool
	}{
		{
			name: "paid online order cannot be cancelled",
			steps: func(f orderFixture) error {
				if _, err := f.uc.Verify(context.Background(), "o1", true); err != nil {
					return err
				}
				_, err := f.uc.Cancel(context.Background(), 1, "o1")
				return err
			},
			wantErr:     domainErrors.ErrNotCancellable,
			wantStatus:  model.OrderStatusConfirmed,
			wantPayment: true,
		},
		{
			name: "cancelled online order refuses late payment",
			steps: func(f orderFixture) error {
				if _, err := f.uc.Cancel(context.Background(), 1, "o1"); err != nil {
					return err
				}
				_, err := f.uc.Verify(context.Background(), "o1", true)
				return err
			},
			wantErr:     domainErrors.ErrNotAwaitingPayment,
			wantStatus:  model.OrderStatusCancelled,
			wantPayment: false,
		},
		{
			name: "unpaid online order is cancellable",
			steps: func(f orderFixture) error {
				_, err := f.uc.Cancel(context.Background(), 1, "o1")
				return err
			},
			wantStatus: model.OrderStatusCancelled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(onlineOrder("o1", 1))

			err := tc.steps(f)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			stored, _ := f.orders.Snapshot("o1")
			if stored.Status != tc.wantStatus || stored.Payment != tc.wantPayment {
				t.Fatalf("expected status=%q payment=%v, got status=%q payment=%v", tc.wantStatus, tc.wantPayment, stored.Status, stored.Payment)
			}
		})
	}
}

func TestOrderUseCaseCancelRequiresOwner(t *testing.T) {
	f := newOrderFixture(testhelpers.SampleOrder("o1", 1))

	if _, err := f.uc.Cancel(context.Background(), 2, "o1"); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	stored, _ := f.orders.Snapshot("o1")
	if stored.Status != model.OrderStatusCODPending {
		t.Fatalf("status must be unchanged, got %q", stored.Status)
	}
	if _, err := f.uc.Cancel(context.Background(), 1, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseCancelLosesRaceToAdmin(t *testing.T) {
	f := newOrderFixture(testhelpers.SampleOrder("o1", 1))
	f.orders.CompareAndSetFn = func(ctx context.Context, id string, expected, status model.OrderStatus) (*model.Order, bool, error) {
		f.orders.CompareAndSetFn = nil
		o, _ := f.orders.Snapshot(id)
		o.Status = model.OrderStatusOutForDelivery
		f.orders.Put(o)
		return &o, false, nil
	}

	if _, err := f.uc.Cancel(context.Background(), 1, "o1"); !errors.Is(err, domainErrors.ErrNotCancellable) {
		t.Fatalf("expected not cancellable after concurrent update, got %v", err)
	}
	stored, _ := f.orders.Snapshot("o1")
	if stored.Status != model.OrderStatusOutForDelivery {
		t.Fatalf("admin status must win, got %q", stored.Status)
	}
}

func TestOrderUseCaseGetAndList(t *testing.T) {
	first := testhelpers.SampleOrder("o1", 1)
	second := testhelpers.SampleOrder("o2", 1)
	second.Date = first.Date.Add(time.Hour)
	f := newOrderFixture(first, second, testhelpers.SampleOrder("o3", 2))

	if _, err := f.uc.Get(context.Background(), 2, "o1"); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	got, err := f.uc.Get(context.Background(), 1, "o1")
	if err != nil || got.ID != "o1" {
		t.Fatalf("unexpected get result %v %v", got, err)
	}

	mine, err := f.uc.ListByUser(context.Background(), 1)
	if err != nil || len(mine) != 2 || mine[0].ID != "o2" {
		t.Fatalf("unexpected user orders %+v %v", mine, err)
	}
	all, err := f.uc.ListAll(context.Background())
	if err != nil || len(all) != 3 {
		t.Fatalf("unexpected all orders %+v %v", all, err)
	}
}

func TestOrderQueryOrder(t *testing.T) {
	q := usecase.NewOrderQuery(testhelpers.NewOrderRepositoryStub(testhelpers.SampleOrder("o1", 1)))
	ctx := context.Background()

	if got, err := q.Order(ctx, 1, " o1 "); err != nil || got.ID != "o1" {
		t.Fatalf("unexpected order %v %v", got, err)
	}
	if _, err := q.Order(ctx, 2, "o1"); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if _, err := q.Order(ctx, 1, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := q.Order(ctx, 1, "  "); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for blank id, got %v", err)
	}
}
