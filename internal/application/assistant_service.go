package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/input"
	"storefront/internal/ports/output"
)

// AssistantConfig holds conversation limits
type AssistantConfig struct {
	SessionTimeout time.Duration
	MaxTurns       int
	CaptureCeiling time.Duration
	ContextTurns   int
	MinAudioBytes  int
}

// DefaultAssistantConfig returns the limits used when none are configured
func DefaultAssistantConfig() AssistantConfig {
	return AssistantConfig{
		SessionTimeout: 30 * time.Minute,
		CaptureCeiling: 15 * time.Second,
		ContextTurns:   3,
		MinAudioBytes:  1000,
	}
}

// AssistantService struct - Application service implementing the assistant widget use cases
type AssistantService struct {
	store    output.ConversationStore
	products output.ProductStore
	client   output.AssistantClient
	recorder output.AudioRecorder
	speech   output.SpeechSynthesizer
	cfg      AssistantConfig

	locksMu sync.Mutex
	locks   map[uuid.UUID]*conversationLock
	timers  sync.Map // conversation id -> *captureTimer

	queries      atomic.Int64
	failures     atomic.Int64
	totalLatency atomic.Int64 // milliseconds
	now          func() time.Time
	afterCapture func(id uuid.UUID) // called after an automatic stop completes
}

// NewAssistantService func - Creates new assistant service
func NewAssistantService(
	store output.ConversationStore,
	products output.ProductStore,
	client output.AssistantClient,
	recorder output.AudioRecorder,
	speech output.SpeechSynthesizer,
	cfg AssistantConfig,
) *AssistantService {
	defaults := DefaultAssistantConfig()
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = defaults.SessionTimeout
	}
	if cfg.CaptureCeiling <= 0 {
		cfg.CaptureCeiling = defaults.CaptureCeiling
	}
	if cfg.ContextTurns <= 0 {
		cfg.ContextTurns = defaults.ContextTurns
	}
	if cfg.MinAudioBytes <= 0 {
		cfg.MinAudioBytes = defaults.MinAudioBytes
	}

	logrus.Infof("Assistant configured: timeout=%v, maxTurns=%d, captureCeiling=%v",
		cfg.SessionTimeout, cfg.MaxTurns, cfg.CaptureCeiling)

	return &AssistantService{
		store:    store,
		products: products,
		client:   client,
		recorder: recorder,
		speech:   speech,
		cfg:      cfg,
		locks:    make(map[uuid.UUID]*conversationLock),
		now:      time.Now,
	}
}

type conversationLock struct {
	mu   sync.Mutex
	refs int
}

// captureTimer is compared by identity so a fired timer only clears its own entry
type captureTimer struct {
	timer *time.Timer
}

var _ input.AssistantService = (*AssistantService)(nil)

// Open func - Use case: mount the assistant widget, optionally on a product page
func (s *AssistantService) Open(ctx context.Context, productID *uuid.UUID) (*domain.Conversation, error) {
	var product *domain.ProductContext
	if productID != nil {
		p, err := s.products.GetProduct(ctx, *productID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("open conversation for product %s: %w", *productID, domain.ErrNotFound)
			}
			return nil, storeError("open conversation", err)
		}
		product = domain.NewProductContext(p)
	}

	conv, err := domain.NewConversation(product, s.cfg.SessionTimeout, s.cfg.MaxTurns)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveConversation(ctx, conv); err != nil {
		logrus.Errorln(err)
		return nil, storeError("open conversation", err)
	}

	logrus.Infof("Opened conversation %s", conv.ID)
	return conv, nil
}

// Get func - Use case: read a conversation
func (s *AssistantService) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	return s.mutate(ctx, id, func(*domain.Conversation) error { return nil })
}

// StartListening func - Use case: begin capturing audio. A response being spoken is cancelled first.
func (s *AssistantService) StartListening(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	n := output.NotifierFromContext(ctx)

	conv, err := s.mutate(ctx, id, func(conv *domain.Conversation) error {
		s.interruptSpeech(conv)
		if err := conv.StartCapture(s.now()); err != nil {
			return err
		}
		if err := s.recorder.Start(ctx, conv.ID); err != nil {
			conv.AbortCapture()
			notifyError(n, "Error de micrófono", "No se pudo acceder al micrófono. Verifique los permisos.")
			if errors.Is(err, domain.ErrCaptureUnavailable) {
				return err
			}
			return fmt.Errorf("%w: %v", domain.ErrCaptureUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return conv, err
	}

	s.arm(id)
	return conv, nil
}

// AppendAudio func - Use case: add recorded audio to the open capture
func (s *AssistantService) AppendAudio(ctx context.Context, id uuid.UUID, chunk []byte) error {
	unlock := s.lock(id)
	defer unlock()

	conv, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if conv.State != domain.AssistantStateCapturing {
		return fmt.Errorf("append audio while %s: %w", conv.State, domain.ErrInvalidTransition)
	}
	return s.recorder.Append(id, chunk)
}

// StopListening func - Use case: end the capture and ask the voice endpoint
func (s *AssistantService) StopListening(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	n := output.NotifierFromContext(ctx)
	s.disarm(id)

	var voice *domain.AssistantVoiceRequest
	conv, err := s.mutate(ctx, id, func(conv *domain.Conversation) error {
		if err := conv.StopCapture(); err != nil {
			return err
		}

		req, err := s.recorder.Stop(conv.ID)
		if err == nil && len(req.Audio) < s.cfg.MinAudioBytes {
			err = fmt.Errorf("%w: audio too short (%d bytes)", domain.ErrCaptureUnavailable, len(req.Audio))
		}
		if err != nil {
			conv.AbortCapture()
			notifyError(n, "Error de procesamiento", "Audio muy corto o silencioso")
			if errors.Is(err, domain.ErrCaptureUnavailable) {
				return err
			}
			return fmt.Errorf("%w: %v", domain.ErrCaptureUnavailable, err)
		}

		req.ProductContext = conv.Product
		voice = req
		return nil
	})
	if err != nil {
		return conv, err
	}

	reply, callErr := s.timed(func() (*domain.AssistantReply, error) {
		return s.client.QueryVoice(ctx, *voice)
	})

	return s.mutate(ctx, id, func(conv *domain.Conversation) error {
		now := s.now()
		if callErr != nil {
			logrus.WithField("conversation_id", id).Errorf("Voice query failed: %v", callErr)
			notifyError(n, "Agente de voz no disponible", fmt.Sprintf("Servidor en %s no accesible", s.client.VoiceEndpoint()))
			return conv.FailResponse(voiceFallbackAnswer, now)
		}
		conv.RecordTranscript(reply.Transcript, now)
		return s.respond(ctx, conv, reply.Response)
	})
}

// ProcessTextQuery func - Use case: answer a typed or transcribed question
func (s *AssistantService) ProcessTextQuery(ctx context.Context, id uuid.UUID, query string) (*domain.Conversation, error) {
	n := output.NotifierFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidRequest)
	}

	var request domain.AssistantTextRequest
	conv, err := s.mutate(ctx, id, func(conv *domain.Conversation) error {
		s.interruptSpeech(conv)

		history := conv.RecentTurns(s.cfg.ContextTurns)
		if err := conv.BeginQuery(query, s.now()); err != nil {
			if errors.Is(err, domain.ErrBusy) {
				notifyError(n, "Consulta en curso", "Espera a que termine la respuesta anterior")
			}
			return err
		}

		request = domain.AssistantTextRequest{
			Query:               query,
			ProductContext:      conv.Product,
			ConversationContext: history,
			UserIntent:          domain.ClassifyIntent(query).Intent,
			UseVoice:            true,
			EnhanceResponse:     true,
		}
		return nil
	})
	if err != nil {
		return conv, err
	}

	reply, callErr := s.timed(func() (*domain.AssistantReply, error) {
		return s.client.QueryText(ctx, request)
	})

	return s.mutate(ctx, id, func(conv *domain.Conversation) error {
		if callErr == nil {
			return s.respond(ctx, conv, reply.Response)
		}

		// any failed exchange, rejected or unreachable, gets the local product answer
		logrus.WithField("conversation_id", id).Errorf("Text query failed: %v", callErr)
		notifyError(n, "Agente RAG no disponible", fmt.Sprintf("Servidor en %s no accesible", s.client.TextEndpoint()))
		answer := textFallbackPrefix + basicProductAnswer(request.UserIntent, conv.Product)
		return conv.FailResponse(answer, s.now())
	})
}

// StopSpeaking func - Use case: cut the spoken answer short
func (s *AssistantService) StopSpeaking(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	return s.mutate(ctx, id, func(conv *domain.Conversation) error {
		s.interruptSpeech(conv)
		return nil
	})
}

// SpeechFinished func - Use case: the client finished playing the answer
func (s *AssistantService) SpeechFinished(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	return s.mutate(ctx, id, func(conv *domain.Conversation) error {
		s.speech.Cancel(conv.ID)
		conv.FinishSpeaking()
		return nil
	})
}

// ClearConversation func - Use case: forget the turns, keep the state
func (s *AssistantService) ClearConversation(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	return s.mutate(ctx, id, func(conv *domain.Conversation) error {
		conv.Clear()
		return nil
	})
}

// Close func - Use case: unmount the widget
func (s *AssistantService) Close(ctx context.Context, id uuid.UUID) error {
	s.release(id)

	unlock := s.lock(id)
	err := s.store.DeleteConversation(ctx, id)
	unlock()

	if err != nil {
		logrus.Errorln(err)
		return storeError("close conversation", err)
	}
	logrus.Infof("Closed conversation %s", id)
	return nil
}

// Stats returns measured endpoint usage
func (s *AssistantService) Stats() domain.AssistantStats {
	stats := domain.AssistantStats{
		TotalQueries:  s.queries.Load(),
		FailedQueries: s.failures.Load(),
	}
	if stats.TotalQueries > 0 {
		stats.AvgResponseTimeMs = s.totalLatency.Load() / stats.TotalQueries
	}
	return stats
}

// respond prepares speech for the answer and moves to speaking
func (s *AssistantService) respond(ctx context.Context, conv *domain.Conversation, answer string) error {
	utterance, err := s.speech.Speak(ctx, conv.ID, answer)
	if err != nil {
		logrus.WithField("conversation_id", conv.ID).Warnf("Speech unavailable: %v", err)
		utterance = nil
	}
	return conv.CompleteResponse(answer, utterance, s.now())
}

func (s *AssistantService) interruptSpeech(conv *domain.Conversation) {
	if conv.State == domain.AssistantStateSpeaking {
		s.speech.Cancel(conv.ID)
		conv.FinishSpeaking()
	}
}

func (s *AssistantService) timed(call func() (*domain.AssistantReply, error)) (*domain.AssistantReply, error) {
	start := time.Now()
	reply, err := call()
	s.queries.Add(1)
	s.totalLatency.Add(time.Since(start).Milliseconds())
	if err == nil && reply == nil {
		err = fmt.Errorf("empty reply: %w", domain.ErrEndpointUnavailable)
	}
	if err != nil {
		s.failures.Add(1)
	}
	return reply, err
}

// mutate loads the conversation under its lock, applies fn and saves the result.
// The conversation is saved even when fn fails so partial transitions persist.
func (s *AssistantService) mutate(ctx context.Context, id uuid.UUID, fn func(conv *domain.Conversation) error) (*domain.Conversation, error) {
	unlock := s.lock(id)
	defer unlock()

	conv, err := s.load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.release(id)
		}
		return nil, err
	}

	if n := output.NotifierFromContext(ctx); n != nil {
		for _, pending := range conv.TakePending() {
			n.Notify(pending)
		}
	}

	fnErr := fn(conv)
	conv.Touch(s.now())
	if err := s.store.SaveConversation(ctx, conv); err != nil {
		logrus.Errorln(err)
		return nil, storeError("save conversation", err)
	}
	return conv, fnErr
}

func (s *AssistantService) load(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, id)
	if err != nil {
		logrus.Errorln(err)
		return nil, storeError("load conversation", err)
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	return conv, nil
}

// lock serialises work on one conversation. Entries live only while someone holds or waits for them.
func (s *AssistantService) lock(id uuid.UUID) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &conversationLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

// release drops the per-conversation resources held outside the store
func (s *AssistantService) release(id uuid.UUID) {
	s.disarm(id)
	s.recorder.Discard(id)
	s.speech.Cancel(id)
}

// arm schedules the automatic end of a capture
func (s *AssistantService) arm(id uuid.UUID) {
	armed := &captureTimer{}
	armed.timer = time.AfterFunc(s.cfg.CaptureCeiling, func() {
		s.timers.CompareAndDelete(id, armed)
		logrus.Infof("Capture ceiling reached for conversation %s", id)
		s.autoStop(id)
		if s.afterCapture != nil {
			s.afterCapture(id)
		}
	})
	if old, loaded := s.timers.Swap(id, armed); loaded {
		old.(*captureTimer).timer.Stop()
	}
}

// autoStop ends a capture with no request attached. Notifications raised on the way
// are kept on the conversation until its next read.
func (s *AssistantService) autoStop(id uuid.UUID) {
	var raised []domain.Notification
	collect := output.NotifierFunc(func(n domain.Notification) { raised = append(raised, n) })

	if _, err := s.StopListening(output.ContextWithNotifier(context.Background(), collect), id); err != nil {
		logrus.WithField("conversation_id", id).Warnf("Automatic stop failed: %v", err)
	}
	if len(raised) == 0 {
		return
	}
	if _, err := s.mutate(context.Background(), id, func(conv *domain.Conversation) error {
		conv.Defer(raised...)
		return nil
	}); err != nil {
		logrus.WithField("conversation_id", id).Warnf("Notifications dropped: %v", err)
	}
}

func (s *AssistantService) disarm(id uuid.UUID) {
	if v, ok := s.timers.LoadAndDelete(id); ok {
		v.(*captureTimer).timer.Stop()
	}
}
