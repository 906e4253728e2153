package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/foxy-spend/internal/model"
)

const systemPrompt = "Eres un parser financiero para español (España). Devuelves SIEMPRE un array JSON válido sin texto extra."

func buildPrompt(text, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	labels := make([]string, 0, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		labels = append(labels, fmt.Sprintf("%q", c.String()))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Extrae los gastos de este texto dictado por voz (idioma %s):\n", locale)
	fmt.Fprintf(&sb, "%q\n\n", text)
	sb.WriteString("Devuelve SOLO un array JSON. Un elemento por gasto mencionado, con estos campos:\n")
	sb.WriteString(`- "amount_eur": número en euros (usa punto decimal; "3 con 50" es 3.50)` + "\n")
	fmt.Fprintf(&sb, "- \"category\": exactamente una de [%s]\n", strings.Join(labels, ", "))
	sb.WriteString(`- "merchant": nombre del comercio o null` + "\n")
	sb.WriteString(`- "note": detalle breve o null` + "\n")
	sb.WriteString(`- "paid_with": "tarjeta", "efectivo", "transferencia" o null` + "\n")
	sb.WriteString(`- "date": la expresión de fecha tal cual ("ayer", "el martes") o null` + "\n")
	sb.WriteString(`- "confidence": número entre 0 y 1` + "\n\n")
	sb.WriteString(`Si ninguna categoría encaja usa "Otros".` + "\n")
	sb.WriteString(`Ejemplo: [{"amount_eur": 3.5, "category": "Café", "merchant": null, "note": null, "paid_with": "tarjeta", "date": null, "confidence": 0.9}]`)

	return sb.String()
}
