package model

import "testing"

func TestOrderStatusCanTransition(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusUnfulfilled, OrderStatusFulfilled, true},
		{OrderStatusUnfulfilled, OrderStatusCanceled, true},
		{OrderStatusUnfulfilled, OrderStatusCompleted, false},
		{OrderStatusFulfilled, OrderStatusCompleted, true},
		{OrderStatusFulfilled, OrderStatusCanceled, false},
		{OrderStatusFulfilled, OrderStatusUnfulfilled, false},
		{OrderStatusCanceled, OrderStatusFulfilled, false},
		{OrderStatusCompleted, OrderStatusFulfilled, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusUnfulfilled.Terminal() || OrderStatusFulfilled.Terminal() {
		t.Fatalf("open statuses must not be terminal")
	}
	if !OrderStatusCanceled.Terminal() || !OrderStatusCompleted.Terminal() {
		t.Fatalf("canceled and completed must be terminal")
	}
}

func TestOrderAcceptsSettlement(t *testing.T) {
	cases := []struct {
		name   string
		status OrderStatus
		s      Settlement
		want   bool
	}{
		{"confirm unfulfilled", OrderStatusUnfulfilled, SettlementConfirmed, true},
		{"confirm fulfilled again", OrderStatusFulfilled, SettlementConfirmed, true},
		{"confirm canceled", OrderStatusCanceled, SettlementConfirmed, false},
		{"confirm completed", OrderStatusCompleted, SettlementConfirmed, false},
		{"reject unfulfilled", OrderStatusUnfulfilled, SettlementRejected, true},
		{"reject fulfilled", OrderStatusFulfilled, SettlementRejected, false},
		{"reject canceled", OrderStatusCanceled, SettlementRejected, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &Order{Status: tc.status}
			if got := o.Accepts(tc.s); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestOrderOwnership(t *testing.T) {
	o := &Order{UserID: 7, Status: OrderStatusUnfulfilled}
	if !o.OwnedBy(7) || o.OwnedBy(8) {
		t.Fatalf("unexpected ownership result")
	}
	var missing *Order
	if missing.OwnedBy(7) {
		t.Fatalf("nil order must not be owned")
	}
	if !o.Payable() {
		t.Fatalf("unfulfilled order must be payable")
	}
	o.Status = OrderStatusFulfilled
	if o.Payable() {
		t.Fatalf("fulfilled order must not be payable")
	}
}

func TestPaymentEventSettlement(t *testing.T) {
	cases := []struct {
		event PaymentEventType
		want  Settlement
		ok    bool
	}{
		{PaymentEventSucceeded, SettlementConfirmed, true},
		{PaymentEventCanceled, SettlementRejected, true},
		{PaymentEventFailed, SettlementRejected, true},
		{"charge.refunded", Settlement{}, false},
	}

	for _, tc := range cases {
		got, ok := tc.event.Settlement()
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s: expected %v/%v, got %v/%v", tc.event, tc.want, tc.ok, got, ok)
		}
	}
}

func TestPaymentStatusTerminal(t *testing.T) {
	if PaymentStatusWaiting.Terminal() {
		t.Fatalf("waiting is not terminal")
	}
	if !PaymentStatusConfirmed.Terminal() || !PaymentStatusRejected.Terminal() {
		t.Fatalf("confirmed and rejected are terminal")
	}
}

func TestProductFilterNormalize(t *testing.T) {
	f := ProductFilter{Page: 0, PerPage: 0}.Normalize()
	if f.Page != 1 || f.PerPage != DefaultProductsPerPage || f.Offset() != 0 {
		t.Fatalf("unexpected defaults: %+v", f)
	}
	f = ProductFilter{Page: 3, PerPage: 1000}.Normalize()
	if f.PerPage != MaxProductsPerPage || f.Offset() != 2*MaxProductsPerPage {
		t.Fatalf("unexpected clamp: %+v", f)
	}
}

func TestAddressFullAddress(t *testing.T) {
	a := Address{Province: "North", City: "Oakton", District: "Old town", Address: "1 Main St", ContactName: "Ann", ContactPhone: "5550001111"}
	want := "North\nOakton\nOld town\n1 Main St\nAnn\n5550001111"
	if got := a.FullAddress(); got != want {
		t.Fatalf("unexpected full address %q", got)
	}
}
