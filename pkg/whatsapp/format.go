package whatsapp

import (
	"fmt"
	"strings"
)

const (
	RecipeHeader  = "*NutriLokal: Resep Makanan Indonesia*"
	GenericHeader = "NutriLokal: Ada pesan baru dari chatbot"
	TestMessage   = "Test koneksi NutriLokal"
)

var recipeKeywords = []string{"resep", "masak", "makanan"}

// IsRecipeQuery matches cooking questions, case-insensitively.
func IsRecipeQuery(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range recipeKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// FormatReply renders a finished exchange for WhatsApp. Cooking questions get
// the recipe header followed by the answer alone, everything else the generic
// question/answer layout.
func FormatReply(question, answer string) string {
	if IsRecipeQuery(question) {
		return fmt.Sprintf("%s\n\n%s", RecipeHeader, answer)
	}
	return fmt.Sprintf("%s\n\nPertanyaan: %s\n\nJawaban: %s", GenericHeader, question, answer)
}
