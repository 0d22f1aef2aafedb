package output

// DefaultAssumptions lists key modeling assumptions rendered when a result carries none.
var DefaultAssumptions = []string{
	"Income-tax slab: 30.0%",
	"General inflation: 6.0% annually",
	"Recurring deposits are made at the start of each period",
	"Interest and gains are taxed once, at maturity",
}

func assumptionsFor(assumptions []string) []string {
	if len(assumptions) == 0 {
		return DefaultAssumptions
	}
	return assumptions
}
