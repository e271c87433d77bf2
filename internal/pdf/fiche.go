package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"ventes-app/internal/i18n"
	"ventes-app/internal/models"
)

// FicheVente renders the one-page sale sheet for a vente, labels translated
// to lang.
func FicheVente(v *models.Vente, lang string) ([]byte, error) {
	t := func(code string) string { return i18n.T(lang, code) }

	cfg := config.NewBuilder().
		WithPageNumber().
		Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, t("fiche_vente")+" "+v.NumeroBC,
		props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(4, line.NewCol(12))

	dateAffichee := v.DateVente
	if jour, ok := v.Day(); ok {
		dateAffichee = jour.Format("02/01/2006")
	}
	m.AddRow(8,
		text.NewCol(6, t("date")+": "+dateAffichee, props.Text{Size: 10}),
		text.NewCol(6, t("etat")+": "+v.Etat, props.Text{Size: 10, Align: align.Right}),
	)

	m.AddRow(10, text.NewCol(12, t("client"), props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
	m.AddRow(6, text.NewCol(12, v.Civilite+" "+v.NomClient+" "+v.Prenom, props.Text{Size: 10}))
	m.AddRow(6, text.NewCol(12, v.Adresse, props.Text{Size: 10}))
	m.AddRow(6, text.NewCol(12, v.CodePostal+" "+v.Ville, props.Text{Size: 10}))
	m.AddRow(6, text.NewCol(12, v.Telephone, props.Text{Size: 10}))

	m.AddRow(10, text.NewCol(12, t("designation"), props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
	m.AddRow(6, text.NewCol(12, v.Designation, props.Text{Size: 10}))
	m.AddRow(6, text.NewCol(12, t("vendeur")+": "+v.Vendeur, props.Text{Size: 10}))

	m.AddRow(4, line.NewCol(12))
	m.AddRow(8,
		text.NewCol(6, t("montant_ht"), props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(6, montant(v.MontantHT), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, fmt.Sprintf("TVA %.2f%%", v.TauxTVA), props.Text{Size: 10}),
		text.NewCol(6, montant(v.MontantTTC-v.MontantHT), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, t("montant_ttc"), props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(6, montant(v.MontantTTC), props.Text{Size: 10, Align: align.Right, Style: fontstyle.Bold}),
	)
	m.AddRow(8,
		text.NewCol(6, fmt.Sprintf("%s (%.2f%%)", t("commission"), v.BaremeCom), props.Text{Size: 10}),
		text.NewCol(6, montant(v.MontantCom), props.Text{Size: 10, Align: align.Right}),
	)

	if len(v.Paiements) > 0 {
		m.AddRow(10, text.NewCol(12, t("paiements"), props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
		m.AddRow(7,
			text.NewCol(4, t("date"), props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(4, t("montant"), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(4, t("commentaire"), props.Text{Size: 9, Style: fontstyle.Bold}),
		)
		for _, p := range v.Paiements {
			jour := p.Date
			if d, ok := models.ParseDate(p.Date); ok {
				jour = d.Format("02/01/2006")
			}
			m.AddRow(6,
				text.NewCol(4, jour, props.Text{Size: 9}),
				text.NewCol(4, montant(p.Montant), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(4, p.Commentaire, props.Text{Size: 9}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func montant(v float64) string { return fmt.Sprintf("%.2f €", v) }
