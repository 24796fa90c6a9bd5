package cart

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"sync"
	"testing"

	"pc-park/internal/domain"
	"pc-park/internal/storage"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var ryzen = domain.CartItem{ID: "3", Name: "AMD Ryzen 5 5600X", Price: 5865, Emoji: "🔥", Category: "cpu"}

func mustLoad(t *testing.T, ctx context.Context, kv storage.KV, logger *zap.Logger) *Store {
	t.Helper()
	s, err := Load(ctx, kv, logger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func newTestStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	return mustLoad(t, context.Background(), kv, zap.NewNop()), kv
}

func TestStore_AddTwiceIncrementsQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_ = s.AddItem(ctx, ryzen)
	_ = s.AddItem(ctx, ryzen)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", items[0].Quantity)
	}
	if s.Count() != 2 {
		t.Errorf("Expected count 2, got %d", s.Count())
	}
}

func TestStore_AddKeepsCapturedPrice(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_ = s.AddItem(ctx, ryzen)
	repriced := ryzen
	repriced.Price = 6900
	_ = s.AddItem(ctx, repriced)

	if got := s.Items()[0].Price; got != 5865 {
		t.Errorf("Expected the first captured price 5865, got %d", got)
	}
	if s.Total() != 2*5865 {
		t.Errorf("Expected total %d, got %d", 2*5865, s.Total())
	}
}

func TestStore_AddIgnoresIncomingQuantity(t *testing.T) {
	s, _ := newTestStore(t)

	item := ryzen
	item.Quantity = 7
	_ = s.AddItem(context.Background(), item)

	if s.Count() != 1 {
		t.Errorf("Expected count 1, got %d", s.Count())
	}
}

func TestStore_AddThenRemoveEmptiesCart(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_ = s.AddItem(ctx, ryzen)
	_ = s.RemoveItem(ctx, ryzen.ID)

	if len(s.Items()) != 0 || s.Count() != 0 {
		t.Errorf("Expected empty cart, got %v", s.Items())
	}
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_ = s.AddItem(ctx, ryzen)
	if err := s.RemoveItem(ctx, "missing"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("Expected count 1, got %d", s.Count())
	}
}

func TestStore_UpdateQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_ = s.AddItem(ctx, ryzen)

	_ = s.UpdateQuantity(ctx, ryzen.ID, 0)
	if got := s.Items(); len(got) != 1 || got[0].Quantity != 1 {
		t.Errorf("updateQuantity(0) should be a no-op, got %v", got)
	}

	_ = s.UpdateQuantity(ctx, ryzen.ID, -3)
	if got := s.Items()[0].Quantity; got != 1 {
		t.Errorf("Negative quantity should be a no-op, got %d", got)
	}

	_ = s.UpdateQuantity(ctx, ryzen.ID, 5)
	if got := s.Items()[0].Quantity; got != 5 {
		t.Errorf("Expected quantity 5, got %d", got)
	}

	_ = s.UpdateQuantity(ctx, "missing", 4)
	if s.Count() != 5 {
		t.Errorf("Updating an unknown id should be a no-op, count %d", s.Count())
	}
}

func TestStore_Clear(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	_ = s.AddItems(ctx, ryzen, domain.CartItem{ID: "11", Name: "Samsung 970 EVO Plus", Price: 6500})
	_ = s.Clear(ctx)

	if s.Count() != 0 || s.Total() != 0 {
		t.Errorf("Expected empty cart after clear")
	}

	raw, _ := kv.Get(ctx, storage.KeyCartItems)
	if string(raw) != "[]" {
		t.Errorf("Expected persisted empty list, got %q", raw)
	}
}

func TestStore_InsertionOrderIsKept(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ids := []string{"11", "3", "7", "3"}
	for _, id := range ids {
		_ = s.AddItem(ctx, domain.CartItem{ID: id, Name: "Part " + id, Price: 100})
	}

	var got []string
	for _, i := range s.Items() {
		got = append(got, i.ID)
	}
	if !reflect.DeepEqual(got, []string{"11", "3", "7"}) {
		t.Errorf("Expected insertion order [11 3 7], got %v", got)
	}
}

func TestStore_ConfirmationFlags(t *testing.T) {
	s, _ := newTestStore(t)

	_ = s.AddItem(context.Background(), ryzen)
	state := s.State()
	if !state.ShowConfirmation {
		t.Error("Expected confirmation to be shown after add")
	}
	if state.LastAdded == nil || state.LastAdded.ID != ryzen.ID || state.LastAdded.Quantity != 1 {
		t.Errorf("Unexpected last added item: %+v", state.LastAdded)
	}

	s.DismissConfirmation()
	s.SetOpen(true)
	state = s.State()
	if state.ShowConfirmation || !state.Open {
		t.Errorf("Unexpected flags after dismiss/open: %+v", state)
	}
}

func TestStore_SubscribersReceiveUpdates(t *testing.T) {
	s, _ := newTestStore(t)

	var got []State
	cancel := s.Subscribe(func(st State) { got = append(got, st) })

	_ = s.AddItem(context.Background(), ryzen)
	s.SetOpen(true)
	cancel()
	_ = s.Clear(context.Background())

	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(got))
	}
	if got[0].Count != 1 || !got[0].ShowConfirmation {
		t.Errorf("First notification should carry the added item and flag: %+v", got[0])
	}
	if !got[1].Open {
		t.Errorf("Second notification should carry the open flag: %+v", got[1])
	}
}

func TestStore_RoundTripThroughStorage(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	s := mustLoad(t, ctx, kv, zap.NewNop())
	_ = s.AddItem(ctx, ryzen)
	_ = s.AddItem(ctx, ryzen)
	_ = s.AddItem(ctx, domain.CartItem{ID: "18", Name: "ASUS ROG Swift", Price: 24499, Image: "/images/monitor.jpg", Category: "peripherals"})

	reloaded := mustLoad(t, ctx, kv, zap.NewNop())
	if !reflect.DeepEqual(s.Items(), reloaded.Items()) {
		t.Errorf("Reloaded items differ:\n  before: %+v\n  after:  %+v", s.Items(), reloaded.Items())
	}
}

func TestLoad_MalformedSnapshotStartsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	_ = kv.Set(ctx, storage.KeyCartItems, []byte("{not json"))

	core, logs := observer.New(zap.ErrorLevel)
	s := mustLoad(t, ctx, kv, zap.New(core))

	if len(s.Items()) != 0 {
		t.Errorf("Expected empty cart, got %v", s.Items())
	}
	if logs.Len() != 1 {
		t.Errorf("Expected the parse failure to be logged once, got %d entries", logs.Len())
	}
}

func TestLoad_NullSnapshotStartsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	_ = kv.Set(ctx, storage.KeyCartItems, []byte("null"))

	s := mustLoad(t, ctx, kv, zap.NewNop())
	if s.Items() == nil || len(s.Items()) != 0 {
		t.Errorf("Expected non-nil empty items, got %#v", s.Items())
	}
}

type failingKV struct {
	storage.KV
	getErr error
	setErr error
}

func (f failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.KV.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KV.Set(ctx, key, value)
}

func TestLoad_UnreadableStorageReturnsError(t *testing.T) {
	readErr := errors.New("connection reset")
	kv := failingKV{KV: storage.NewMemory(), getErr: readErr}

	s, err := Load(context.Background(), kv, zap.NewNop())
	if !errors.Is(err, readErr) {
		t.Fatalf("Expected wrapped read error, got %v", err)
	}
	if s != nil {
		t.Error("Expected no store when the snapshot could not be read")
	}
}

func TestLoad_CancelledContextKeepsStoredCart(t *testing.T) {
	kv := storage.NewMemory()
	seeded := mustLoad(t, context.Background(), kv, zap.NewNop())
	_ = seeded.AddItems(context.Background(), ryzen, ryzen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, cancelAwareKV{kv}, zap.NewNop()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	reloaded := mustLoad(t, context.Background(), kv, zap.NewNop())
	if reloaded.Count() != 2 {
		t.Errorf("Expected the stored cart to survive, count %d", reloaded.Count())
	}
}

// cancelAwareKV fails reads on a done context like the network backends do.
type cancelAwareKV struct {
	storage.KV
}

func (c cancelAwareKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.KV.Get(ctx, key)
}

func TestStore_PersistFailureKeepsChange(t *testing.T) {
	writeErr := errors.New("disk full")
	kv := failingKV{KV: storage.NewMemory(), setErr: writeErr}
	s := mustLoad(t, context.Background(), kv, zap.NewNop())

	err := s.AddItem(context.Background(), ryzen)
	if !errors.Is(err, writeErr) {
		t.Errorf("Expected wrapped write error, got %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("Expected the in-memory change to stand, count %d", s.Count())
	}
}

func TestStore_ConcurrentAddsAreSerialized(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddItem(ctx, ryzen)
		}()
	}
	wg.Wait()

	if items := s.Items(); len(items) != 1 || items[0].Quantity != 100 {
		t.Errorf("Expected one line with quantity 100, got %+v", items)
	}
}

// Feature: storefront, Property 8: Cart total is the sum of line subtotals
func TestProperty_CartTotalIsSumOfLines(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals sum of price*quantity and count equals sum of quantities", prop.ForAll(
		func(size int, prices []int64, quantities []int) bool {
			s := mustLoad(t, context.Background(), storage.NewMemory(), zap.NewNop())
			ctx := context.Background()

			n := min(size, len(prices), len(quantities))
			var wantTotal int64
			wantCount := 0
			for i := 0; i < n; i++ {
				id := string(rune('a' + i))
				_ = s.AddItem(ctx, domain.CartItem{ID: id, Name: id, Price: prices[i]})
				_ = s.UpdateQuantity(ctx, id, quantities[i])
				wantTotal += prices[i] * int64(quantities[i])
				wantCount += quantities[i]
			}

			if s.Total() != wantTotal {
				t.Logf("FAIL: expected total %d, got %d", wantTotal, s.Total())
				return false
			}
			return s.Count() == wantCount
		},
		gen.IntRange(0, 20),
		gen.SliceOfN(20, gen.Int64Range(1, 500000)),
		gen.SliceOfN(20, gen.IntRange(1, 50)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: storefront, Property 9: Persisted carts reload unchanged
func TestProperty_CartRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("reloading from storage yields structurally equal items", prop.ForAll(
		func(ids []int, price int64) bool {
			kv := storage.NewMemory()
			ctx := context.Background()

			s := mustLoad(t, ctx, kv, zap.NewNop())
			for _, n := range ids {
				id := strconv.Itoa(n)
				_ = s.AddItem(ctx, domain.CartItem{ID: id, Name: "Part " + id, Price: price, Category: "ram"})
			}

			return reflect.DeepEqual(s.Items(), mustLoad(t, ctx, kv, zap.NewNop()).Items())
		},
		gen.SliceOf(gen.IntRange(1, 5)),
		gen.Int64Range(1, 1000000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
