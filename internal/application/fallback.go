package application

import (
	"fmt"
	"strconv"

	"storefront/internal/domain"
)

const (
	textFallbackPrefix  = "El agente RAG no está disponible. Usando respuesta básica: "
	noProductAnswer     = "Lo siento, no tengo información específica disponible en este momento."
	voiceFallbackAnswer = "Lo siento, no pude procesar tu consulta de voz. El agente Gemini Live no está disponible."
	unknownCategory     = "esta categoría"
	summaryLength       = 100
)

type fallbackFormatter func(p *domain.ProductContext) string

// fallbackFormatters answers from the product context alone, one entry per intent
var fallbackFormatters = map[domain.Intent]fallbackFormatter{
	domain.IntentPrice:           priceAnswer,
	domain.IntentBuy:             priceAnswer,
	domain.IntentCharacteristics: featuresAnswer,
	domain.IntentCompare:         compareAnswer,
	domain.IntentRecommend:       recommendAnswer,
	domain.IntentGeneral:         summaryAnswer,
}

// basicProductAnswer builds the answer used when the text endpoint is unavailable
func basicProductAnswer(intent domain.Intent, p *domain.ProductContext) string {
	if p == nil {
		return noProductAnswer
	}
	format, ok := fallbackFormatters[intent]
	if !ok {
		format = summaryAnswer
	}
	return format(p)
}

func priceAnswer(p *domain.ProductContext) string {
	return fmt.Sprintf("%s cuesta €%s.", p.Name, formatPrice(p.Price))
}

func featuresAnswer(p *domain.ProductContext) string {
	return fmt.Sprintf("%s: %s", p.Name, p.Description)
}

func compareAnswer(p *domain.ProductContext) string {
	return fmt.Sprintf("%s es una excelente opción en la categoría %s. Para comparaciones detalladas, necesito acceso al agente RAG.", p.Name, categoryOf(p))
}

func recommendAnswer(p *domain.ProductContext) string {
	return fmt.Sprintf("Basándome en %s, te recomendaría productos similares en la categoría %s.", p.Name, categoryOf(p))
}

func summaryAnswer(p *domain.ProductContext) string {
	description := []rune(p.Description)
	if len(description) > summaryLength {
		description = description[:summaryLength]
	}
	return fmt.Sprintf("%s - €%s. %s...", p.Name, formatPrice(p.Price), string(description))
}

func categoryOf(p *domain.ProductContext) string {
	if p.Category == nil || *p.Category == "" {
		return unknownCategory
	}
	return *p.Category
}

// formatPrice prints the shortest decimal form: 20 → "20", 19.9 → "19.9"
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
