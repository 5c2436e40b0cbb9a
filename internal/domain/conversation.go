package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AssistantState is the lifecycle state of an assistant conversation
type AssistantState string

const (
	// AssistantStateIdle const
	AssistantStateIdle AssistantState = "idle"
	// AssistantStateCapturing const
	AssistantStateCapturing AssistantState = "capturing-audio"
	// AssistantStateAwaiting const
	AssistantStateAwaiting AssistantState = "awaiting-response"
	// AssistantStateSpeaking const
	AssistantStateSpeaking AssistantState = "speaking-response"
)

// TurnRole identifies who produced a conversation turn
type TurnRole string

const (
	// TurnRoleUser const
	TurnRoleUser TurnRole = "user"
	// TurnRoleAssistant const
	TurnRoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one message of an assistant conversation
type ConversationTurn struct {
	Role      TurnRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation represents the assistant widget state for one product page.
// Only one query is in flight at a time: the state is the guard.
type Conversation struct {
	ID               uuid.UUID          `json:"id"`
	Product          *ProductContext    `json:"product,omitempty"`
	Turns            []ConversationTurn `json:"turns"`
	Transcript       string             `json:"transcript"`
	State            AssistantState     `json:"state"`
	Utterance        *Utterance         `json:"utterance,omitempty"`
	CaptureStartedAt *time.Time         `json:"capture_started_at,omitempty"`
	LastAccessTime   time.Time          `json:"last_access_time"`
	Timeout          time.Duration      `json:"timeout"`
	MaxTurns         int                `json:"max_turns"`
	// Pending holds notifications raised while no request was attached
	Pending []Notification `json:"pending,omitempty"`
}

// NewConversation creates an idle conversation with configurable timeout and maxTurns.
// maxTurns <= 0 keeps every turn.
func NewConversation(product *ProductContext, timeout time.Duration, maxTurns int) (*Conversation, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return &Conversation{
		ID:             id,
		Product:        product,
		Turns:          make([]ConversationTurn, 0),
		State:          AssistantStateIdle,
		LastAccessTime: time.Now(),
		Timeout:        timeout,
		MaxTurns:       maxTurns,
	}, nil
}

// IsExpired checks if the conversation has exceeded the configured timeout
func (c *Conversation) IsExpired() bool {
	if c.Timeout <= 0 {
		return false
	}
	return time.Since(c.LastAccessTime) > c.Timeout
}

// Touch refreshes the last access time
func (c *Conversation) Touch(now time.Time) {
	c.LastAccessTime = now
}

// IsBusy reports whether a capture or a query is in flight
func (c *Conversation) IsBusy() bool {
	return c.State == AssistantStateCapturing || c.State == AssistantStateAwaiting
}

func (c *Conversation) transitionError(op string) error {
	if c.IsBusy() {
		return fmt.Errorf("%s while %s: %w", op, c.State, ErrBusy)
	}
	return fmt.Errorf("%s while %s: %w", op, c.State, ErrInvalidTransition)
}

// StartCapture moves idle → capturing-audio
func (c *Conversation) StartCapture(now time.Time) error {
	if c.State != AssistantStateIdle {
		return c.transitionError("start capture")
	}
	c.State = AssistantStateCapturing
	c.CaptureStartedAt = &now
	c.Utterance = nil
	return nil
}

// StopCapture moves capturing-audio → awaiting-response
func (c *Conversation) StopCapture() error {
	if c.State != AssistantStateCapturing {
		return fmt.Errorf("stop capture while %s: %w", c.State, ErrInvalidTransition)
	}
	c.State = AssistantStateAwaiting
	c.CaptureStartedAt = nil
	return nil
}

// AbortCapture returns a failed capture to idle
func (c *Conversation) AbortCapture() {
	if c.State == AssistantStateCapturing || c.State == AssistantStateAwaiting {
		c.State = AssistantStateIdle
	}
	c.CaptureStartedAt = nil
}

// BeginQuery moves idle → awaiting-response and records the user turn
func (c *Conversation) BeginQuery(query string, now time.Time) error {
	if c.State != AssistantStateIdle {
		return c.transitionError("send query")
	}
	c.State = AssistantStateAwaiting
	c.Utterance = nil
	c.Transcript = query
	c.appendTurn(TurnRoleUser, query, now)
	return nil
}

// RecordTranscript appends the user turn recognized from voice while awaiting
func (c *Conversation) RecordTranscript(transcript string, now time.Time) {
	if transcript == "" {
		return
	}
	c.Transcript = transcript
	c.appendTurn(TurnRoleUser, transcript, now)
}

// CompleteResponse appends the assistant answer and moves awaiting-response → speaking-response
func (c *Conversation) CompleteResponse(answer string, utterance *Utterance, now time.Time) error {
	if c.State != AssistantStateAwaiting {
		return fmt.Errorf("complete response while %s: %w", c.State, ErrInvalidTransition)
	}
	c.appendTurn(TurnRoleAssistant, answer, now)
	c.Transcript = ""
	c.Utterance = utterance
	c.State = AssistantStateSpeaking
	return nil
}

// FailResponse appends the fallback answer and moves awaiting-response → idle
func (c *Conversation) FailResponse(fallback string, now time.Time) error {
	if c.State != AssistantStateAwaiting {
		return fmt.Errorf("fail response while %s: %w", c.State, ErrInvalidTransition)
	}
	c.appendTurn(TurnRoleAssistant, fallback, now)
	c.Transcript = ""
	c.Utterance = nil
	c.State = AssistantStateIdle
	return nil
}

// FinishSpeaking moves speaking-response → idle. It reports whether the state changed.
func (c *Conversation) FinishSpeaking() bool {
	if c.State != AssistantStateSpeaking {
		return false
	}
	c.State = AssistantStateIdle
	c.Utterance = nil
	return true
}

// Clear empties turns and transcript without touching the state
func (c *Conversation) Clear() {
	c.Turns = make([]ConversationTurn, 0)
	c.Transcript = ""
}

// appendTurn adds a turn. If the history limit is reached, the oldest pair is removed.
func (c *Conversation) appendTurn(role TurnRole, content string, now time.Time) {
	c.Turns = append(c.Turns, ConversationTurn{Role: role, Content: content, CreatedAt: now})
	if c.MaxTurns > 0 {
		for len(c.Turns) > c.MaxTurns*2 {
			c.Turns = c.Turns[2:]
		}
	}
}

// GetHistory returns a copy of the conversation turns
func (c *Conversation) GetHistory() []ConversationTurn {
	if len(c.Turns) == 0 {
		return []ConversationTurn{}
	}

	history := make([]ConversationTurn, len(c.Turns))
	copy(history, c.Turns)
	return history
}

// RecentTurns returns a copy of the last n turns
func (c *Conversation) RecentTurns(n int) []ConversationTurn {
	if n <= 0 || len(c.Turns) == 0 {
		return []ConversationTurn{}
	}
	start := len(c.Turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]ConversationTurn, len(c.Turns)-start)
	copy(out, c.Turns[start:])
	return out
}

// Defer keeps notifications for the next reader
func (c *Conversation) Defer(notifications ...Notification) {
	c.Pending = append(c.Pending, notifications...)
}

// TakePending returns and clears the kept notifications
func (c *Conversation) TakePending() []Notification {
	pending := c.Pending
	c.Pending = nil
	return pending
}

// Snapshot returns a deep copy safe to hand out of a store
func (c *Conversation) Snapshot() *Conversation {
	cp := *c
	cp.Turns = c.GetHistory()
	if c.Utterance != nil {
		u := *c.Utterance
		cp.Utterance = &u
	}
	if c.CaptureStartedAt != nil {
		t := *c.CaptureStartedAt
		cp.CaptureStartedAt = &t
	}
	if c.Pending != nil {
		cp.Pending = append([]Notification(nil), c.Pending...)
	}
	return &cp
}
