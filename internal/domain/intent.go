package domain

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Intent is the coarse purpose of a shopper's question
type Intent string

const (
	// IntentCompare const
	IntentCompare Intent = "compare"
	// IntentRecommend const
	IntentRecommend Intent = "recommend"
	// IntentBuy const
	IntentBuy Intent = "buy"
	// IntentCharacteristics const
	IntentCharacteristics Intent = "characteristics"
	// IntentPrice const
	IntentPrice Intent = "price"
	// IntentGeneral const
	IntentGeneral Intent = "general"
)

const (
	confidenceFloor   = 0.3
	confidenceCeiling = 0.9
	triggerWeight     = 0.3
	entityWeight      = 0.2
)

type intentPattern struct {
	intent   Intent
	triggers []string
}

// intentPatterns is ordered: on equal hit counts the earlier label wins.
var intentPatterns = foldPatterns([]intentPattern{
	{IntentCompare, []string{"diferencia", "comparar", "compara", "versus", "vs", "mejor que", "cuál es mejor"}},
	{IntentRecommend, []string{"recomienda", "sugerir", "alternativa", "similar", "parecido", "qué me recomiendas"}},
	{IntentBuy, []string{"comprar", "precio", "cuesta", "vale", "coste", "añadir al carrito"}},
	{IntentCharacteristics, []string{"características", "especificaciones", "detalles", "información", "qué tiene"}},
	{IntentPrice, []string{"precio", "cuesta", "vale", "coste", "barato", "caro", "oferta"}},
})

var productTerms = foldTerms([]string{
	"iphone", "samsung", "xiaomi", "huawei", "google pixel",
	"laptop", "macbook", "dell", "hp", "lenovo", "asus",
	"cámara", "canon", "nikon", "sony", "gopro",
	"auriculares", "airpods", "beats", "bose",
	"televisor", "tv", "lg", "panasonic", "tcl",
})

// IntentResult is the outcome of classifying a query
type IntentResult struct {
	Intent     Intent   `json:"intent"`
	Triggers   []string `json:"triggers"`
	Entities   []string `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// ClassifyIntent labels a query by counting trigger substrings per intent.
// Matching ignores case and accents.
func ClassifyIntent(query string) IntentResult {
	text := FoldText(query)

	result := IntentResult{
		Intent:   IntentGeneral,
		Triggers: []string{},
		Entities: []string{},
	}

	best := 0
	for _, p := range intentPatterns {
		var hits []string
		for _, trigger := range p.triggers {
			if strings.Contains(text, trigger) {
				hits = append(hits, trigger)
			}
		}
		if len(hits) > best {
			best = len(hits)
			result.Intent = p.intent
			result.Triggers = hits
		}
	}

	for _, term := range productTerms {
		if strings.Contains(text, term) {
			result.Entities = append(result.Entities, term)
		}
	}

	score := float64(best)*triggerWeight + float64(len(result.Entities))*entityWeight + confidenceFloor
	result.Confidence = math.Round(math.Min(confidenceCeiling, score)*100) / 100
	return result
}

// FoldText lower-cases text and strips combining marks
func FoldText(text string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		return strings.ToLower(text)
	}
	return folded
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func foldTerms(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = FoldText(t)
	}
	return out
}

func foldPatterns(patterns []intentPattern) []intentPattern {
	for i := range patterns {
		patterns[i].triggers = foldTerms(patterns[i].triggers)
	}
	return patterns
}
