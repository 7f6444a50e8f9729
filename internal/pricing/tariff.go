package pricing // pricing implements the tariff table and booking cost arithmetic

// HourlyRate is the base rate charged per hour of parking.  It is also
// the minimum charge for any stay shorter than one hour.
const HourlyRate = 50

// Tariff is one entry of the fixed tariff table: a named flat-rate
// package covering a reference number of hours.
type Tariff struct {
	Key   string  // stable lookup key, e.g. "half_day"
	Name  string  // display name stored on the booking
	Rate  float64 // flat package price
	Hours float64 // reference duration covered by the package
}

// tariffs is the fixed in-memory tariff table.  Package fields are
// copied onto the booking at creation time, so editing this table
// never re-prices an open booking.
var tariffs = map[string]Tariff{
	"hourly":   {Key: "hourly", Name: "Hourly", Rate: 50, Hours: 1},
	"half_day": {Key: "half_day", Name: "Half Day (6 hours)", Rate: 250, Hours: 6},
	"full_day": {Key: "full_day", Name: "Full Day (24 hours)", Rate: 400, Hours: 24},
	"weekly":   {Key: "weekly", Name: "Weekly (7 days)", Rate: 2500, Hours: 168},
	"monthly":  {Key: "monthly", Name: "Monthly (30 days)", Rate: 8000, Hours: 720},
}

// tariffOrder fixes the display order of the table for listings.
var tariffOrder = []string{"hourly", "half_day", "full_day", "weekly", "monthly"}

// Lookup returns the tariff for the given key.  Unrecognized keys fall
// back to the hourly tariff, mirroring how the booking operation
// treats an unknown package selection.
func Lookup(key string) Tariff {
	if t, ok := tariffs[key]; ok {
		return t
	}
	return tariffs["hourly"]
}

// Tariffs returns the tariff table in display order.
func Tariffs() []Tariff {
	out := make([]Tariff, 0, len(tariffOrder))
	for _, k := range tariffOrder {
		out = append(out, tariffs[k])
	}
	return out
}
