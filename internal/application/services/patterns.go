package services

import (
	"github.com/academiebarbier/marcel-backend/internal/domain/entities"
)

// FieldCategory is one category of an ordered field-pattern table. The first
// category whose pattern list contains a substring of the normalized input
// wins; declaration order is the tie-break.
type FieldCategory struct {
	Category string
	Patterns []string
}

// IntentCategory is one category of the intent trigger table
type IntentCategory struct {
	Intent   entities.Intent
	Triggers []string
}

// Patterns holds the hand-authored Québécois French trigger tables the
// analyzer matches against. Built once at startup and treated as immutable;
// the analyzer never mutates it. Patterns use the straight apostrophe only,
// normalization folds the curly glyph before lookup.
type Patterns struct {
	Services       []FieldCategory
	Dates          []FieldCategory
	Times          []FieldCategory
	Barbiers       []FieldCategory
	Intents        []IntentCategory
	Colloquialisms []string
}

// DefaultPatterns returns the production pattern tables for the academy
func DefaultPatterns() *Patterns {
	return &Patterns{
		Services: []FieldCategory{
			{Category: "coupe_homme", Patterns: []string{
				"coupe homme", "coupe pour homme", "coupe de cheveux pour homme", "coupe d'homme", "cheveux homme",
			}},
			{Category: "coupe_femme", Patterns: []string{
				"coupe femme", "coupe pour femme", "coupe de cheveux pour femme", "coupe de femme", "cheveux femme",
			}},
			{Category: "coupe_barbe", Patterns: []string{
				"coupe et barbe", "coupe barbe", "coupe-barbe", "cheveux et barbe", "barbe et cheveux",
			}},
			{Category: "barbe", Patterns: []string{
				"barbe", "rasage", "taille de barbe",
			}},
			{Category: "coloration", Patterns: []string{
				"coloration", "teinture", "couleur",
			}},
		},
		Dates: []FieldCategory{
			{Category: "mardi", Patterns: []string{"mardi"}},
			{Category: "mercredi", Patterns: []string{"mercredi"}},
			{Category: "jeudi", Patterns: []string{"jeudi"}},
			{Category: "vendredi", Patterns: []string{"vendredi"}},
			{Category: "samedi", Patterns: []string{"samedi"}},
			{Category: "aujourd_hui", Patterns: []string{"aujourd'hui", "aujourdhui"}},
			{Category: "demain", Patterns: []string{"demain"}},
		},
		// apres_midi is declared before midi so "après-midi" cannot match
		// the bare "midi" pattern
		Times: []FieldCategory{
			{Category: "matin", Patterns: []string{"matin", "avant-midi", "avant midi"}},
			{Category: "apres_midi", Patterns: []string{"après-midi", "apres-midi", "après midi", "apres midi"}},
			{Category: "midi", Patterns: []string{"midi", "sur l'heure du diner", "sur l'heure du dîner"}},
			{Category: "soir", Patterns: []string{"soir", "fin de journée", "fin de journee"}},
		},
		Barbiers: []FieldCategory{
			{Category: "marcel", Patterns: []string{"marcel"}},
			{Category: "alexandre", Patterns: []string{"alexandre", "alex"}},
			{Category: "stephane", Patterns: []string{"stéphane", "stephane", "steph"}},
			{Category: "vincent", Patterns: []string{"vincent", "vince"}},
		},
		Intents: []IntentCategory{
			{Intent: entities.IntentBooking, Triggers: []string{
				"rendez-vous", "rendez vous", "rdv", "réserver", "reserver",
				"réservation", "reservation", "booker", "j'aimerais",
				"je voudrais", "je veux", "disponible", "dispo", "une place",
			}},
			{Intent: entities.IntentPricing, Triggers: []string{
				"combien", "prix", "coûte", "coute", "tarif", "cher", "charge",
			}},
			{Intent: entities.IntentHours, Triggers: []string{
				"ouvert", "fermé", "ferme", "horaire", "heures d'ouverture",
				"quelle heure", "ouvrez", "fermez",
			}},
			{Intent: entities.IntentCancelModify, Triggers: []string{
				"annuler", "canceller", "cancel", "déplacer", "deplacer",
				"reporter", "changer", "modifier",
			}},
		},
		Colloquialisms: []string{
			"c'est-tu", "peux-tu", "à matin", "à soir", "en masse",
			"pantoute", "faque",
		},
	}
}
