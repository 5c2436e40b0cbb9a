package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// Mock implementations for testing

// MockProductStore implements output.ProductStore for testing
type MockProductStore struct {
	Products map[uuid.UUID]*domain.Product

	GetProductFunc               func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindProductsFunc             func(ctx context.Context, query domain.QueryProductRequest) ([]domain.Product, int64, error)
	FindSimilarFunc              func(ctx context.Context, id uuid.UUID, query domain.SimilarityQuery) ([]domain.SimilarProduct, error)
	FindSimilarByEmbeddingFunc   func(ctx context.Context, embedding []float32, query domain.SimilarityQuery) ([]domain.SimilarProduct, error)
	ProductsWithoutEmbeddingFunc func(ctx context.Context, limit int) ([]domain.Product, error)
	SaveEmbeddingFunc            func(ctx context.Context, id uuid.UUID, embedding []float32) error

	// Captured values for assertions
	LastQuery           *domain.QueryProductRequest
	LastSimilarityQuery *domain.SimilarityQuery
}

func newMockProductStore(products ...*domain.Product) *MockProductStore {
	m := &MockProductStore{Products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		m.Products[p.ID] = p
	}
	return m
}

func (m *MockProductStore) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	if p, ok := m.Products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockProductStore) FindProducts(ctx context.Context, query domain.QueryProductRequest) ([]domain.Product, int64, error) {
	m.LastQuery = &query
	if m.FindProductsFunc != nil {
		return m.FindProductsFunc(ctx, query)
	}
	return []domain.Product{}, 0, nil
}

func (m *MockProductStore) FindSimilar(ctx context.Context, id uuid.UUID, query domain.SimilarityQuery) ([]domain.SimilarProduct, error) {
	m.LastSimilarityQuery = &query
	if m.FindSimilarFunc != nil {
		return m.FindSimilarFunc(ctx, id, query)
	}
	return nil, nil
}

func (m *MockProductStore) FindSimilarByEmbedding(ctx context.Context, embedding []float32, query domain.SimilarityQuery) ([]domain.SimilarProduct, error) {
	m.LastSimilarityQuery = &query
	if m.FindSimilarByEmbeddingFunc != nil {
		return m.FindSimilarByEmbeddingFunc(ctx, embedding, query)
	}
	return nil, nil
}

func (m *MockProductStore) ProductsWithoutEmbedding(ctx context.Context, limit int) ([]domain.Product, error) {
	if m.ProductsWithoutEmbeddingFunc != nil {
		return m.ProductsWithoutEmbeddingFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockProductStore) SaveEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	if m.SaveEmbeddingFunc != nil {
		return m.SaveEmbeddingFunc(ctx, id, embedding)
	}
	return nil
}

// MockCartStore implements output.CartStore for testing with an in-memory line list
type MockCartStore struct {
	mu       sync.Mutex
	Items    []domain.CartItem
	Products *MockProductStore

	ListLinesFunc  func(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	UpsertItemFunc func(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error

	// Captured values for assertions
	UpsertCalls int
}

func (m *MockCartStore) ListLines(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	if m.ListLinesFunc != nil {
		return m.ListLinesFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := []domain.CartLine{}
	for _, item := range m.Items {
		if item.SessionID != sessionID {
			continue
		}
		var product *domain.Product
		if m.Products != nil {
			product = m.Products.Products[item.ProductID]
		}
		lines = append(lines, domain.NewCartLine(item, product))
	}
	return lines, nil
}

func (m *MockCartStore) UpsertItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, now time.Time) error {
	m.mu.Lock()
	m.UpsertCalls++
	m.mu.Unlock()
	if m.UpsertItemFunc != nil {
		if err := m.UpsertItemFunc(ctx, sessionID, productID, quantity); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Items {
		if m.Items[i].SessionID == sessionID && m.Items[i].ProductID == productID {
			m.Items[i].Quantity += quantity
			m.Items[i].UpdatedAt = now
			return nil
		}
	}
	m.Items = append(m.Items, domain.CartItem{
		ID: uuid.New(), SessionID: sessionID, ProductID: productID,
		Quantity: quantity, CreatedAt: now, UpdatedAt: now,
	})
	return nil
}

func (m *MockCartStore) SetQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Items {
		if m.Items[i].ID == lineID && m.Items[i].SessionID == sessionID {
			m.Items[i].Quantity = quantity
			m.Items[i].UpdatedAt = now
		}
	}
	return nil
}

func (m *MockCartStore) DeleteItem(ctx context.Context, sessionID string, lineID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Items[:0]
	for _, item := range m.Items {
		if item.ID == lineID && item.SessionID == sessionID {
			continue
		}
		kept = append(kept, item)
	}
	m.Items = kept
	return nil
}

func (m *MockCartStore) ClearSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Items[:0]
	for _, item := range m.Items {
		if item.SessionID != sessionID {
			kept = append(kept, item)
		}
	}
	m.Items = kept
	return nil
}

// MockConversationStore implements output.ConversationStore for testing
type MockConversationStore struct {
	mu            sync.Mutex
	Conversations map[uuid.UUID]*domain.Conversation

	SaveConversationFunc func(ctx context.Context, conversation *domain.Conversation) error

	// Track delete calls
	DeleteCalls []uuid.UUID
}

func newMockConversationStore() *MockConversationStore {
	return &MockConversationStore{Conversations: make(map[uuid.UUID]*domain.Conversation)}
}

func (m *MockConversationStore) GetConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.Conversations[id]
	if !ok {
		return nil, nil
	}
	return conv.Snapshot(), nil
}

func (m *MockConversationStore) SaveConversation(ctx context.Context, conversation *domain.Conversation) error {
	if m.SaveConversationFunc != nil {
		if err := m.SaveConversationFunc(ctx, conversation); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conversations[conversation.ID] = conversation.Snapshot()
	return nil
}

func (m *MockConversationStore) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	delete(m.Conversations, id)
	return nil
}

// MockAssistantClient implements output.AssistantClient for testing
type MockAssistantClient struct {
	mu             sync.Mutex
	QueryTextFunc  func(ctx context.Context, request domain.AssistantTextRequest) (*domain.AssistantReply, error)
	QueryVoiceFunc func(ctx context.Context, request domain.AssistantVoiceRequest) (*domain.AssistantReply, error)

	// Captured values for assertions
	TextRequests  []domain.AssistantTextRequest
	VoiceRequests []domain.AssistantVoiceRequest
}

func (m *MockAssistantClient) QueryText(ctx context.Context, request domain.AssistantTextRequest) (*domain.AssistantReply, error) {
	m.mu.Lock()
	m.TextRequests = append(m.TextRequests, request)
	m.mu.Unlock()
	if m.QueryTextFunc != nil {
		return m.QueryTextFunc(ctx, request)
	}
	return &domain.AssistantReply{Response: "AI response"}, nil
}

func (m *MockAssistantClient) QueryVoice(ctx context.Context, request domain.AssistantVoiceRequest) (*domain.AssistantReply, error) {
	m.mu.Lock()
	m.VoiceRequests = append(m.VoiceRequests, request)
	m.mu.Unlock()
	if m.QueryVoiceFunc != nil {
		return m.QueryVoiceFunc(ctx, request)
	}
	return &domain.AssistantReply{Response: "AI voice response", Transcript: "pregunta hablada"}, nil
}

func (m *MockAssistantClient) TextEndpoint() string  { return "localhost:8501" }
func (m *MockAssistantClient) VoiceEndpoint() string { return "localhost:8502" }

func (m *MockAssistantClient) textRequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.TextRequests)
}

// MockAudioRecorder implements output.AudioRecorder for testing
type MockAudioRecorder struct {
	mu        sync.Mutex
	StartFunc func(ctx context.Context, id uuid.UUID) error
	Buffers   map[uuid.UUID][]byte
	Discarded []uuid.UUID
}

func newMockAudioRecorder() *MockAudioRecorder {
	return &MockAudioRecorder{Buffers: make(map[uuid.UUID][]byte)}
}

func (m *MockAudioRecorder) Start(ctx context.Context, id uuid.UUID) error {
	if m.StartFunc != nil {
		if err := m.StartFunc(ctx, id); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Buffers[id] = []byte{}
	return nil
}

func (m *MockAudioRecorder) Append(id uuid.UUID, chunk []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.Buffers[id]
	if !ok {
		return domain.ErrCaptureUnavailable
	}
	m.Buffers[id] = append(buf, chunk...)
	return nil
}

func (m *MockAudioRecorder) Stop(id uuid.UUID) (*domain.AssistantVoiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.Buffers[id]
	if !ok {
		return nil, domain.ErrCaptureUnavailable
	}
	delete(m.Buffers, id)
	return &domain.AssistantVoiceRequest{Audio: buf, Filename: "voice.webm", ContentType: "audio/webm"}, nil
}

func (m *MockAudioRecorder) Discard(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Buffers, id)
	m.Discarded = append(m.Discarded, id)
}

// MockSpeechSynthesizer implements output.SpeechSynthesizer for testing
type MockSpeechSynthesizer struct {
	mu        sync.Mutex
	Spoken    []string
	Cancelled []uuid.UUID
}

func (m *MockSpeechSynthesizer) Speak(ctx context.Context, id uuid.UUID, text string) (*domain.Utterance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spoken = append(m.Spoken, text)
	return &domain.Utterance{Text: text, Lang: "es-ES", Rate: 0.85, Pitch: 1.0, Volume: 0.9}, nil
}

func (m *MockSpeechSynthesizer) Cancel(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cancelled = append(m.Cancelled, id)
}

// recordingNotifier collects notifications
type recordingNotifier struct {
	mu            sync.Mutex
	Notifications []domain.Notification
}

func (r *recordingNotifier) Notify(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications = append(r.Notifications, n)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Notifications)
}

func (r *recordingNotifier) last() domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notifications) == 0 {
		return domain.Notification{}
	}
	return r.Notifications[len(r.Notifications)-1]
}

// mapStorage implements output.SessionStorage for testing
type mapStorage map[string]string

func (m mapStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapStorage) Set(key, value string) {
	m[key] = value
}

func newTestProduct(name string, price float64, category string) *domain.Product {
	p := &domain.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "Descripción de " + name,
		Price:       price,
	}
	if category != "" {
		p.Category = &category
	}
	return p
}
