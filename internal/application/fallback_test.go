package application

import (
	"strings"
	"testing"

	"storefront/internal/domain"
)

// TestBasicProductAnswer tests one formatter per intent
func TestBasicProductAnswer(t *testing.T) {
	category := "Audio"
	product := &domain.ProductContext{
		Name:        "Bose QC45",
		Description: "Auriculares con cancelación de ruido",
		Price:       19.9,
		Category:    &category,
	}

	tests := []struct {
		intent domain.Intent
		want   string
	}{
		{domain.IntentPrice, "Bose QC45 cuesta €19.9."},
		{domain.IntentBuy, "Bose QC45 cuesta €19.9."},
		{domain.IntentCharacteristics, "Bose QC45: Auriculares con cancelación de ruido"},
		{domain.IntentCompare, "Bose QC45 es una excelente opción en la categoría Audio. Para comparaciones detalladas, necesito acceso al agente RAG."},
		{domain.IntentRecommend, "Basándome en Bose QC45, te recomendaría productos similares en la categoría Audio."},
		{domain.IntentGeneral, "Bose QC45 - €19.9. Auriculares con cancelación de ruido..."},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			if got := basicProductAnswer(tt.intent, product); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestBasicProductAnswer_EveryIntentHasFormatter tests that the table covers the closed set
func TestBasicProductAnswer_EveryIntentHasFormatter(t *testing.T) {
	intents := []domain.Intent{
		domain.IntentCompare, domain.IntentRecommend, domain.IntentBuy,
		domain.IntentCharacteristics, domain.IntentPrice, domain.IntentGeneral,
	}
	for _, intent := range intents {
		if _, ok := fallbackFormatters[intent]; !ok {
			t.Errorf("missing formatter for %s", intent)
		}
	}
}

// TestBasicProductAnswer_NoProduct tests the apology
func TestBasicProductAnswer_NoProduct(t *testing.T) {
	if got := basicProductAnswer(domain.IntentPrice, nil); got != noProductAnswer {
		t.Errorf("unexpected %q", got)
	}
}

// TestBasicProductAnswer_SummaryTruncatesRunes tests the 100 character summary
func TestBasicProductAnswer_SummaryTruncatesRunes(t *testing.T) {
	product := &domain.ProductContext{Name: "TV", Price: 300, Description: strings.Repeat("ñ", 150)}

	got := basicProductAnswer(domain.IntentGeneral, product)
	want := "TV - €300. " + strings.Repeat("ñ", 100) + "..."
	if got != want {
		t.Errorf("unexpected summary %q", got)
	}
}

// TestBasicProductAnswer_NoCategory tests the category placeholder
func TestBasicProductAnswer_NoCategory(t *testing.T) {
	product := &domain.ProductContext{Name: "Lenovo Tab"}
	got := basicProductAnswer(domain.IntentRecommend, product)
	if !strings.Contains(got, "en la categoría esta categoría") {
		t.Errorf("unexpected %q", got)
	}
}
