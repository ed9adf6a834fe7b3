package service_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/provider"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/service"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/cache"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type storeState struct {
	orders   map[string]entities.Order
	items    map[string][]entities.OrderItem
	stock    map[string]entities.Stock
	shares   map[string]entities.SharedOrder
	webhooks map[string]string
}

func (s storeState) clone() storeState {
	items := make(map[string][]entities.OrderItem, len(s.items))
	for k, v := range s.items {
		items[k] = slices.Clone(v)
	}
	return storeState{
		orders:   maps.Clone(s.orders),
		items:    items,
		stock:    maps.Clone(s.stock),
		shares:   maps.Clone(s.shares),
		webhooks: maps.Clone(s.webhooks),
	}
}

type methodRow struct {
	entities.PaymentMethod
	enabled bool
}

// memStore implements every repository the services need on top of plain maps.
type memStore struct {
	mu sync.Mutex
	storeState

	gateways map[string]entities.GatewayConfig
	methods  []methodRow
}

func newMemStore() *memStore {
	return &memStore{
		storeState: storeState{
			orders:   make(map[string]entities.Order),
			items:    make(map[string][]entities.OrderItem),
			stock:    make(map[string]entities.Stock),
			shares:   make(map[string]entities.SharedOrder),
			webhooks: make(map[string]string),
		},
		gateways: make(map[string]entities.GatewayConfig),
	}
}

func (m *memStore) snapshot() storeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeState.clone()
}

func (m *memStore) restore(s storeState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeState = s
}

func (m *memStore) order(id string) entities.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id]
}

func (m *memStore) available(productID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[productID].Available
}

func (m *memStore) share(token string) entities.SharedOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shares[token]
}

func (m *memStore) webhookResults() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.webhooks)
}

func (m *memStore) GetOrder(_ context.Context, orderID string) (entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return entities.Order{}, entities.ErrNotFound
	}
	return o, nil
}

func (m *memStore) GetOrderForUpdate(ctx context.Context, orderID string) (entities.Order, error) {
	return m.GetOrder(ctx, orderID)
}

func (m *memStore) GetOrderByNumber(_ context.Context, orderNumber string) (entities.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return entities.Order{}, entities.ErrNotFound
}

func (m *memStore) GetOrderItems(_ context.Context, orderID string) ([]entities.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items[orderID]), nil
}

func (m *memStore) CompareAndSetPayment(_ context.Context, orderID string, status entities.OrderStatus, payment entities.PaymentStatus, method string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Status != entities.StatusPending || o.PaymentStatus != entities.PaymentPending {
		return false, nil
	}
	o.Status, o.PaymentStatus = status, payment
	if method != "" {
		o.PaymentMethod = method
	}
	m.orders[orderID] = o
	return true, nil
}

func (m *memStore) SetGatewayReference(_ context.Context, orderID, reference, method string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.PaymentStatus != entities.PaymentPending {
		return false, nil
	}
	o.GatewayReference, o.PaymentMethod = reference, method
	m.orders[orderID] = o
	return true, nil
}

func (m *memStore) CreateShare(_ context.Context, share entities.SharedOrder) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.shares {
		if s.OrderID == share.OrderID {
			return false, nil
		}
	}
	m.shares[share.Token] = share
	return true, nil
}

func (m *memStore) GetShareByToken(_ context.Context, token string) (entities.SharedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shares[token]
	if !ok {
		return entities.SharedOrder{}, entities.ErrNotFound
	}
	return s, nil
}

func (m *memStore) GetShareByTokenForUpdate(ctx context.Context, token string) (entities.SharedOrder, error) {
	return m.GetShareByToken(ctx, token)
}

func (m *memStore) GetShareByOrderID(_ context.Context, orderID string) (entities.SharedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.shares {
		if s.OrderID == orderID {
			return s, nil
		}
	}
	return entities.SharedOrder{}, entities.ErrNotFound
}

func (m *memStore) CompareAndSetShareStatus(_ context.Context, shareID string, from, to entities.PaymentStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.shares {
		if s.ID == shareID && s.Status == from {
			s.Status = to
			m.shares[token] = s
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) LockInventory(_ context.Context, productIDs []string) (map[string]entities.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]entities.Stock, len(productIDs))
	for _, id := range productIDs {
		if s, ok := m.stock[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (m *memStore) DecrementInventory(_ context.Context, productID string, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stock[productID]
	if !ok || s.Available < quantity {
		return false, nil
	}
	s.Available -= quantity
	m.stock[productID] = s
	return true, nil
}

func (m *memStore) ListActiveMethods(_ context.Context) ([]entities.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.PaymentMethod
	for _, row := range m.methods {
		if row.enabled && m.gateways[row.GatewayID].Active {
			out = append(out, row.PaymentMethod)
		}
	}
	return out, nil
}

func (m *memStore) GetActiveMethod(_ context.Context, method string) (entities.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.methods {
		if row.Method == method && row.enabled && m.gateways[row.GatewayID].Active {
			return row.PaymentMethod, nil
		}
	}
	return entities.PaymentMethod{}, entities.ErrNotFound
}

func (m *memStore) GetGatewayConfig(_ context.Context, gatewayID string) (entities.GatewayConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.gateways[gatewayID]
	if !ok {
		return entities.GatewayConfig{}, entities.ErrNotFound
	}
	return cfg, nil
}

func (m *memStore) GetGatewayConfigByName(_ context.Context, name string) (entities.GatewayConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cfg := range m.gateways {
		if cfg.Name == name {
			return cfg, nil
		}
	}
	return entities.GatewayConfig{}, entities.ErrNotFound
}

func (m *memStore) RecordWebhookEvent(_ context.Context, rec entities.WebhookRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.webhooks[rec.Fingerprint]; ok {
		return false, nil
	}
	m.webhooks[rec.Fingerprint] = rec.Result
	return true, nil
}

func (m *memStore) MarkWebhookProcessed(_ context.Context, fingerprint, result string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webhooks[fingerprint] = result
	return nil
}

type txMarker struct{}

// memTx serializes transactions, which is what row locks give the real settlement path,
// and rolls the store back when the callback fails.
type memTx struct {
	mu    sync.Mutex
	store *memStore
}

func (m *memTx) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return callback(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.store.snapshot()
	if err := callback(context.WithValue(ctx, txMarker{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entities.PaymentEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event entities.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) published() []entities.PaymentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeCreator struct {
	mu     sync.Mutex
	calls  []gateway.OrderRequest
	result gateway.Result
}

func (f *fakeCreator) CreateOrder(_ context.Context, _ gateway.Credentials, req gateway.OrderRequest) gateway.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.result
}

const (
	orderID     = "0b9f6a52-4f0c-4f5c-9d0f-3c3c2f7f0001"
	orderNumber = "SO-1001"
	ownerID     = "user-1"
	origin      = "https://shop.example.com"
	secret      = "gateway-secret"
)

var startTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memStore
	events   *recordingPublisher
	clock    *fakeClock
	creator  *fakeCreator
	shares   *service.ShareService
	payments *service.PaymentService
	webhooks *service.WebhookService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemStore()
	seed(store)

	f := &fixture{
		store:  store,
		events: &recordingPublisher{},
		clock:  &fakeClock{now: startTime},
		creator: &fakeCreator{result: gateway.Result{
			Success:    true,
			PaymentURL: "https://pay.example.com/cashier/T100",
			TradeNo:    "T100",
		}},
	}

	schemas, err := provider.NewSchemaValidator()
	require.NoError(t, err)
	registry := provider.NewRegistry(provider.NewGateway(f.creator, schemas), provider.NewDirect(schemas))

	tx := &memTx{store: store}
	shareCfg := config.Share{PublicOrigin: origin, TTL: 24 * time.Hour, TokenLength: 20}
	settler := service.NewSettler(logger, store, store, service.NewGuard(store), f.events, f.clock.Now)

	f.shares = service.NewShareService(logger, store, store, cache.NewLRU[string, []byte](16, time.Minute), shareCfg, f.clock.Now)
	f.payments = service.NewPaymentService(logger, tx, store, store, store, registry, settler, shareCfg, f.clock.Now)
	f.webhooks = service.NewWebhookService(logger, tx, store, store, store, store, registry, settler, f.clock.Now)
	return f
}

func seed(store *memStore) {
	store.orders[orderID] = entities.Order{
		ID:            orderID,
		OrderNumber:   orderNumber,
		UserID:        ownerID,
		Status:        entities.StatusPending,
		PaymentStatus: entities.PaymentPending,
		Subtotal:      decimal.RequireFromString("100.00"),
		Tax:           decimal.Zero,
		Shipping:      decimal.Zero,
		Total:         decimal.RequireFromString("100.00"),
		CreatedAt:     startTime.Add(-time.Hour),
	}
	store.items[orderID] = []entities.OrderItem{
		{ID: "i-1", ProductID: "p-1", ProductName: "Mug", Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")},
		{ID: "i-2", ProductID: "p-2", ProductName: "Teapot", Quantity: 1, UnitPrice: decimal.RequireFromString("50.00")},
	}
	store.stock["p-1"] = entities.Stock{ProductID: "p-1", Name: "Mug", Available: 10}
	store.stock["p-2"] = entities.Stock{ProductID: "p-2", Name: "Teapot", Available: 5}

	store.gateways["g-acacia"] = entities.GatewayConfig{
		ID:         "g-acacia",
		Name:       "acacia",
		Kind:       entities.ProviderGateway,
		APIKey:     secret,
		MerchantID: "1001",
		APIURL:     "https://pay.example.com/submit.php",
		Active:     true,
		Settings:   json.RawMessage(`{"methods":["acacia_pay","alipay"]}`),
	}
	store.gateways["g-wallet"] = entities.GatewayConfig{
		ID:       "g-wallet",
		Name:     "wallet",
		Kind:     entities.ProviderDirect,
		Active:   true,
		Settings: json.RawMessage(`{"methods":["balance"]}`),
	}
	store.methods = []methodRow{
		{PaymentMethod: entities.PaymentMethod{Method: "acacia_pay", DisplayName: "Acacia Pay", GatewayID: "g-acacia"}, enabled: true},
		{PaymentMethod: entities.PaymentMethod{Method: "alipay", DisplayName: "Alipay", GatewayID: "g-acacia"}, enabled: true},
		{PaymentMethod: entities.PaymentMethod{Method: "balance", DisplayName: "Balance", GatewayID: "g-wallet"}, enabled: true},
		{PaymentMethod: entities.PaymentMethod{Method: "bitcoin", DisplayName: "Bitcoin", GatewayID: "g-acacia"}, enabled: false},
	}
}

func (f *fixture) share(t *testing.T) entities.ShareLink {
	t.Helper()
	link, err := f.shares.CreateShare(context.Background(), ownerID, orderID)
	require.NoError(t, err)
	return link
}

// callback builds a notification the acacia gateway would send, signed with its secret.
func callback(reference, status, money string) map[string]string {
	fields := map[string]string{
		gateway.FieldPID:         "1001",
		gateway.FieldType:        "acacia_pay",
		gateway.FieldOutTradeNo:  reference,
		gateway.FieldTradeNo:     "T100",
		gateway.FieldTradeStatus: status,
		gateway.FieldName:        "Order " + orderNumber,
		gateway.FieldMoney:       money,
		gateway.FieldSignType:    gateway.SignTypeMD5,
	}
	fields[gateway.FieldSign] = gateway.Sign(fields, secret)
	return fields
}
