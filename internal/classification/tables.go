package classification

import "github.com/Veraticus/foxy-spend/internal/model"

func categoryEntries(category model.Category, keywords ...string) []Entry[model.Category] {
	out := make([]Entry[model.Category], len(keywords))
	for i, k := range keywords {
		out[i] = Entry[model.Category]{Keyword: k, Value: category}
	}
	return out
}

func concat[T any](groups ...[]Entry[T]) []Entry[T] {
	var out []Entry[T]
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// ConservativeCategories lists only brand names and unambiguous nouns. A hit here is
// trusted without asking the remote classifier.
func ConservativeCategories() *Table[model.Category] {
	return NewTable(concat(
		categoryEntries(model.CategoryCoffee, "starbucks", "cappuccino", "capuchino", "latte", "espresso"),
		categoryEntries(model.CategoryEatingOut, "mcdonalds", "mcdonald's", "burger king", "pizza hut", "telepizza"),
		categoryEntries(model.CategoryGroceries, "mercadona", "carrefour", "lidl", "dia", "aldi"),
		categoryEntries(model.CategoryTransport, "taxi", "taxis", "uber", "cabify", "metro", "bus", "tren", "gasolina"),
	))
}

// BroadCategories is the wider table used by the local fallback classifier.
func BroadCategories() *Table[model.Category] {
	return NewTable(concat(
		categoryEntries(model.CategoryCoffee,
			"café", "cafés", "coffee", "starbucks", "cafetería", "cappuccino", "capuchino", "latte", "espresso", "cortado"),
		categoryEntries(model.CategoryEatingOut,
			"comida", "comer", "restaurante", "almuerzo", "cena", "burger", "pizza", "telepizza",
			"dominos", "domino's", "mcdonalds", "mcdonald's", "burguer king", "menú", "tapas"),
		categoryEntries(model.CategoryGroceries,
			"supermercado", "súper", "mercadona", "carrefour", "lidl", "aldi", "dia", "compra"),
		categoryEntries(model.CategoryTransport,
			"parking", "gasolina", "gasolinera", "taxi", "taxis", "uber", "cabify", "metro", "bus", "tren", "renfe"),
		categoryEntries(model.CategoryLeisure,
			"cine", "concierto", "fiesta", "bar", "bares", "copas", "teatro", "entradas"),
		categoryEntries(model.CategoryHome,
			"ikea", "muebles", "decoración", "ferretería"),
		categoryEntries(model.CategoryHealth,
			"farmacia", "medicina", "medicamentos", "doctor", "médico", "hospital", "dentista"),
		categoryEntries(model.CategoryShopping,
			"ropa", "zapatos", "zara", "mango", "tienda", "h&m", "primark", "amazon"),
	))
}

func merchantEntries(pairs ...string) []Entry[string] {
	out := make([]Entry[string], 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Entry[string]{Keyword: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// ConservativeMerchants is the small brand list the fast path may name.
func ConservativeMerchants() *Table[string] {
	return NewTable(merchantEntries(
		"mercadona", "Mercadona",
		"carrefour", "Carrefour",
		"lidl", "Lidl",
		"dia", "Dia",
		"aldi", "Aldi",
		"starbucks", "Starbucks",
		"mcdonalds", "McDonald's",
		"mcdonald's", "McDonald's",
		"burger king", "Burger King",
		"zara", "Zara",
		"h&m", "H&M",
		"primark", "Primark",
		"uber", "Uber",
		"cabify", "Cabify",
		"taxi", "Taxi",
	))
}

// KnownMerchants is the brand list used by the local fallback classifier.
func KnownMerchants() *Table[string] {
	return NewTable(merchantEntries(
		"mercadona", "Mercadona",
		"carrefour", "Carrefour",
		"lidl", "Lidl",
		"aldi", "Aldi",
		"dia", "Dia",
		"starbucks", "Starbucks",
		"mcdonalds", "McDonald's",
		"mcdonald's", "McDonald's",
		"burger king", "Burger King",
		"burguer king", "Burger King",
		"telepizza", "Telepizza",
		"dominos", "Domino's",
		"domino's", "Domino's",
		"zara", "Zara",
		"mango", "Mango",
		"h&m", "H&M",
		"primark", "Primark",
		"ikea", "Ikea",
		"uber", "Uber",
		"cabify", "Cabify",
		"renfe", "Renfe",
		"amazon", "Amazon",
	))
}

// PaymentMethods recognizes how an expense was paid.
func PaymentMethods() *Table[model.PaymentMethod] {
	return NewTable([]Entry[model.PaymentMethod]{
		{Keyword: "tarjeta", Value: model.PaymentCard},
		{Keyword: "efectivo", Value: model.PaymentCash},
		{Keyword: "cash", Value: model.PaymentCash},
		{Keyword: "transferencia", Value: model.PaymentTransfer},
		{Keyword: "bizum", Value: model.PaymentTransfer},
	})
}
