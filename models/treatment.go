package models

// Treatment is a static catalog entry. The catalog is fixed, not
// user-editable.
type Treatment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Price    string `json:"price"`
	Icon     string `json:"icon"`
}

// Treatments is the service catalog offered for booking.
var Treatments = []Treatment{
	{ID: "nail_reconstruction", Name: "Ricostruzione Unghie", Duration: "90 min", Price: "€50", Icon: "💅"},
	{ID: "gel_fill", Name: "Refill/Copertura in Gel", Duration: "60 min", Price: "€35", Icon: "✨"},
	{ID: "mani_semi", Name: "Semipermanente Mani", Duration: "45 min", Price: "€25", Icon: "👌"},
	{ID: "pedi_semi", Name: "Semipermanente Piedi", Duration: "45 min", Price: "€30", Icon: "🦶"},
}

// TreatmentByID looks up a catalog entry.
func TreatmentByID(id string) (Treatment, bool) {
	for _, t := range Treatments {
		if t.ID == id {
			return t, true
		}
	}
	return Treatment{}, false
}
