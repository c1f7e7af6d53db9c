package toolcsv

// Profile describes the header layout of an inventory CSV.
// Header names are compared case-insensitively.
type Profile struct {
	Name        string
	NameCol     string
	CategoryCol string
	QuantityCol string
	ValueCol    string
	RateCol     string // optional
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.CategoryCol, p.QuantityCol, p.ValueCol}
}

// profiles is tried in order during header detection.
var profiles = []Profile{
	{
		Name:        "es",
		NameCol:     "nombre",
		CategoryCol: "categoría",
		QuantityCol: "cantidad",
		ValueCol:    "valor de reposición",
		RateCol:     "tarifa diaria",
	},
	{
		Name:        "es-ascii",
		NameCol:     "nombre",
		CategoryCol: "categoria",
		QuantityCol: "cantidad",
		ValueCol:    "valor de reposicion",
		RateCol:     "tarifa diaria",
	},
	{
		Name:        "en",
		NameCol:     "name",
		CategoryCol: "category",
		QuantityCol: "quantity",
		ValueCol:    "replacement value",
		RateCol:     "daily rate",
	},
}
