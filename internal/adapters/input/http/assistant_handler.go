package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/domain"
)

// maxAudioChunk bounds one uploaded chunk
const maxAudioChunk = 5 << 20

// conversationResult writes the conversation, with the error status when err is set
func conversationResult(c *fiber.Ctx, conv *domain.Conversation, err error) error {
	data := newConversationResponse(conv)
	if err != nil {
		if data == nil {
			return fail(c, err, nil)
		}
		return fail(c, err, data)
	}
	return ok(c, data)
}

// conversationAction runs one assistant operation on the conversation in the path
func (hdl *HTTPHandler) conversationAction(action func(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramUUID(c, "id")
		if err != nil {
			return badRequest(c, err)
		}
		conv, err := action(c.UserContext(), id)
		return conversationResult(c, conv, err)
	}
}

// OpenConversation godoc
// @Summary Open assistant conversation
// @Description Starts a conversation, optionally about a product
// @Tags Assistant
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations	[post]
// @Produce json
// @param OpenConversation body OpenConversationRequest false "OpenConversation"
func (hdl *HTTPHandler) OpenConversation(c *fiber.Ctx) error {
	var request OpenConversationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return badRequest(c, err)
		}
	}
	conv, err := hdl.srv.Assistant.Open(c.UserContext(), request.ProductID)
	return conversationResult(c, conv, err)
}

// GetConversation godoc
// @Summary Get assistant conversation
// @Tags Assistant
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}	[get]
// @Produce json
// @param id path string true "conversation uuid"
func (hdl *HTTPHandler) GetConversation(c *fiber.Ctx) error {
	return hdl.conversationAction(hdl.srv.Assistant.Get)(c)
}

// CloseConversation godoc
// @Summary Close assistant conversation
// @Tags Assistant
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}	[delete]
// @Produce json
// @param id path string true "conversation uuid"
func (hdl *HTTPHandler) CloseConversation(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := hdl.srv.Assistant.Close(c.UserContext(), id); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, "")
}

// TextQuery godoc
// @Summary Ask the assistant
// @Description Sends a text question; an unreachable endpoint yields a basic answer from the product data
// @Tags Assistant
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}/query	[post]
// @Produce json
// @param id path string true "conversation uuid"
// @param TextQuery body TextQueryRequest true "TextQuery"
func (hdl *HTTPHandler) TextQuery(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var request TextQueryRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return badRequest(c, err)
	}
	conv, err := hdl.srv.Assistant.ProcessTextQuery(c.UserContext(), id, request.Query)
	return conversationResult(c, conv, err)
}

// StartListening godoc
// @Summary Start voice capture
// @Tags Assistant
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}/listen	[post]
// @Produce json
// @param id path string true "conversation uuid"
func (hdl *HTTPHandler) StartListening(c *fiber.Ctx) error {
	return hdl.conversationAction(hdl.srv.Assistant.StartListening)(c)
}

// AppendAudio godoc
// @Summary Upload recorded audio
// @Description Accepts a multipart "audio" file or a raw body
// @Tags Assistant
// @Accept multipart/form-data
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}/audio	[post]
// @Produce json
// @param id path string true "conversation uuid"
// @param audio formData file false "audio chunk"
func (hdl *HTTPHandler) AppendAudio(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}

	chunk, err := audioChunk(c)
	if err != nil {
		return badRequest(c, err)
	}
	if len(chunk) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	if err := hdl.srv.Assistant.AppendAudio(c.UserContext(), id, chunk); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, fiber.Map{"received": len(chunk)})
}

func audioChunk(c *fiber.Ctx) ([]byte, error) {
	header, err := c.FormFile("audio")
	if err != nil {
		body := c.Body()
		if len(body) > maxAudioChunk {
			return nil, fiber.ErrRequestEntityTooLarge
		}
		return append([]byte(nil), body...), nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxAudioChunk))
}

// StopListening godoc
// @Summary Stop voice capture and ask the voice endpoint
// @Tags Assistant
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}/listen/stop	[post]
// @Produce json
// @param id path string true "conversation uuid"
func (hdl *HTTPHandler) StopListening(c *fiber.Ctx) error {
	return hdl.conversationAction(hdl.srv.Assistant.StopListening)(c)
}

// StopSpeaking godoc
// @Summary Interrupt the spoken answer
// @Tags Assistant
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}/speech/stop	[post]
// @Produce json
// @param id path string true "conversation uuid"
func (hdl *HTTPHandler) StopSpeaking(c *fiber.Ctx) error {
	return hdl.conversationAction(hdl.srv.Assistant.StopSpeaking)(c)
}

// SpeechFinished godoc
// @Summary Report the end of playback
// @Tags Assistant
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}/speech/finished	[post]
// @Produce json
// @param id path string true "conversation uuid"
func (hdl *HTTPHandler) SpeechFinished(c *fiber.Ctx) error {
	return hdl.conversationAction(hdl.srv.Assistant.SpeechFinished)(c)
}

// ClearConversation godoc
// @Summary Clear conversation history
// @Tags Assistant
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/assistant/conversations/{id}/clear	[post]
// @Produce json
// @param id path string true "conversation uuid"
func (hdl *HTTPHandler) ClearConversation(c *fiber.Ctx) error {
	return hdl.conversationAction(hdl.srv.Assistant.ClearConversation)(c)
}
