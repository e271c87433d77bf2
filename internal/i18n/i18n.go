package i18n

import "strings"

// Minimal fr/en translation table. French is the reference language; English
// falls back to French, anything else falls back to the code itself.
var translations = map[string]map[string]string{
	"fr": {
		"required":            "Requis",
		"invalid_bc":          "Numéro BC invalide (6 chiffres attendus)",
		"invalid_date":        "Date invalide",
		"invalid_credentials": "Identifiants invalides",
		"not_found":           "Introuvable",
		"vente":               "Vente",
		"fiche_vente":         "Fiche de vente",
		"numero_bc":           "Numéro BC",
		"client":              "Client",
		"vendeur":             "Vendeur",
		"designation":         "Désignation",
		"montant_ht":          "Montant HT",
		"montant_ttc":         "Montant TTC",
		"etat":                "État",
		"paiements":           "Paiements",
		"date":                "Date",
		"montant":             "Montant",
		"commentaire":         "Commentaire",
		"commission":          "Commission",
	},
	"en": {
		"required":            "Required",
		"invalid_bc":          "Invalid order number (6 digits expected)",
		"invalid_date":        "Invalid date",
		"invalid_credentials": "Invalid credentials",
		"not_found":           "Not found",
		"vente":               "Sale",
		"fiche_vente":         "Sale sheet",
		"numero_bc":           "Order number",
		"client":              "Client",
		"vendeur":             "Salesperson",
		"designation":         "Description",
		"montant_ht":          "Pre-tax amount",
		"montant_ttc":         "Total amount",
		"etat":                "Status",
		"paiements":           "Payments",
		"date":                "Date",
		"montant":             "Amount",
		"commentaire":         "Comment",
		"commission":          "Commission",
	},
}

// T translates code for lang. Unknown languages fall back to French; unknown
// codes fall back to the code string so missing entries stay visible.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if v, ok := m[code]; ok {
			return v
		}
	}
	if lang != "fr" {
		if v, ok := translations["fr"][code]; ok {
			return v
		}
	}
	return code
}

// DetectLanguage picks fr or en from an Accept-Language header value.
// Default is French.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		if tag == "en" || strings.HasPrefix(tag, "en-") {
			return "en"
		}
		if tag == "fr" || strings.HasPrefix(tag, "fr-") {
			return "fr"
		}
	}
	return "fr"
}
