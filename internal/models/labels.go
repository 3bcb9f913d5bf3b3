package models

// Closed sets of recognized form values. The site's forms only ever emit
// these identifiers, so anything else is a hand-crafted or scripted payload.

// subjectLabels maps the contact-form subject identifiers to the display
// labels used in notification emails.
var subjectLabels = map[string]string{
	"reservation": "Réservation",
	"villa":       "Chef en villa",
	"domicile":    "Chef à domicile",
	"menus":       "Menus",
	"evenement":   "Événement",
	"presse":      "Presse",
	"autre":       "Autre demande",
}

// serviceTypeLabels maps booking-form service identifiers (booking types,
// menu pages, service pages) to display labels.
var serviceTypeLabels = map[string]string{
	// Booking types.
	"villa":        "Chef en villa",
	"domicile":     "Chef à domicile",
	"evenement":    "Événement privé",
	"hebdomadaire": "Formule hebdomadaire",
	// Menu pages.
	"menu-creole":        "Menu créole",
	"menu-gastronomique": "Menu gastronomique",
	"menu-vegetarien":    "Menu végétarien",
	"brunch":             "Brunch",
	// Service pages.
	"table-hote":       "Table d'hôte",
	"cours-de-cuisine": "Cours de cuisine",
	"traiteur":         "Traiteur",
}

// ValidSubject reports whether s is one of the recognized subject values.
func ValidSubject(s string) bool {
	_, ok := subjectLabels[s]
	return ok
}

// ValidServiceType reports whether s is one of the recognized service types.
func ValidServiceType(s string) bool {
	_, ok := serviceTypeLabels[s]
	return ok
}

// SubjectLabel returns the display label for a subject identifier, falling
// back to the identifier itself.
func SubjectLabel(s string) string {
	if l, ok := subjectLabels[s]; ok {
		return l
	}
	return s
}

// ServiceTypeLabel returns the display label for a service-type identifier,
// falling back to the identifier itself.
func ServiceTypeLabel(s string) string {
	if l, ok := serviceTypeLabels[s]; ok {
		return l
	}
	return s
}
