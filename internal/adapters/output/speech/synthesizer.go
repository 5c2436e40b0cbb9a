package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"storefront/configs"
	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

const (
	defaultLang   = "es-ES"
	defaultRate   = 0.85
	defaultPitch  = 1.0
	defaultVolume = 0.9

	// an utterance nobody cancels is forgotten after this long
	playbackTTL     = 10 * time.Minute
	playbackCleanup = time.Minute
)

var _ output.SpeechSynthesizer = (*ClientPlayback)(nil)

// ClientPlayback struct - describes speech for the browser to play and tracks what is playing
type ClientPlayback struct {
	voice   domain.Utterance
	playing *cache.Cache
}

// NewClientPlayback func - zero config values fall back to the Spanish voice settings
func NewClientPlayback(config configs.Speech) *ClientPlayback {
	voice := domain.Utterance{
		Lang:   config.Lang,
		Rate:   config.Rate,
		Pitch:  config.Pitch,
		Volume: config.Volume,
	}
	if voice.Lang == "" {
		voice.Lang = defaultLang
	}
	if voice.Rate <= 0 {
		voice.Rate = defaultRate
	}
	if voice.Pitch <= 0 {
		voice.Pitch = defaultPitch
	}
	if voice.Volume <= 0 || voice.Volume > 1 {
		voice.Volume = defaultVolume
	}
	return &ClientPlayback{
		voice:   voice,
		playing: cache.New(playbackTTL, playbackCleanup),
	}
}

// Speak replaces whatever the conversation was playing with text
func (s *ClientPlayback) Speak(ctx context.Context, conversationID uuid.UUID, text string) (*domain.Utterance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: nothing to speak", domain.ErrInvalidRequest)
	}

	utterance := s.voice
	utterance.Text = text

	s.playing.Set(conversationID.String(), utterance, cache.DefaultExpiration)

	logrus.WithField("conversation_id", conversationID).Debugf("Speaking %d chars in %s", len(text), utterance.Lang)

	played := utterance
	return &played, nil
}

// Cancel stops playback
func (s *ClientPlayback) Cancel(conversationID uuid.UUID) {
	s.playing.Delete(conversationID.String())
}

// Playing returns what the conversation is speaking, if anything
func (s *ClientPlayback) Playing(conversationID uuid.UUID) (*domain.Utterance, bool) {
	value, found := s.playing.Get(conversationID.String())
	if !found {
		return nil, false
	}
	u := value.(domain.Utterance)
	return &u, true
}
