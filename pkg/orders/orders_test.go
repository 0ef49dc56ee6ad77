package orders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClientOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/ORD-511":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"number":"ORD-511","email":"c@example.com","deliveryAddress":"Calle 45 # 12-30","items":["tutela-kit"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL + "/")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	order, err := client.Order(context.Background(), "ORD-511")
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	want := Order{
		Number:          "ORD-511",
		Email:           "c@example.com",
		DeliveryAddress: "Calle 45 # 12-30",
		Items:           []string{"tutela-kit"},
	}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if _, err := client.Order(context.Background(), "ORD-999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.Order(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank order number")
	}
}

func TestNewClientRequiresBase(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(""); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}

func TestStaticLookup(t *testing.T) {
	t.Parallel()

	static := Static{"ORD-1": {Number: "ORD-1", DeliveryAddress: "Cra 7 # 1-1"}}

	order, err := static.Order(context.Background(), "ORD-1")
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.DeliveryAddress == "" {
		t.Fatalf("expected delivery address")
	}

	if _, err := static.Order(context.Background(), "ORD-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
