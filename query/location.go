package query

// LocationOption is one entry of the location picker.
type LocationOption struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

const defaultLocationIcon = "place"

var locationOptions = []LocationOption{
	{"Living Room", "weekend"},
	{"Bedroom", "hotel"},
	{"Kitchen", "kitchen"},
	{"Office", "business_center"},
	{"Bathroom", "bathtub"},
	{"Closet", "checkroom"},
	{"Car", "directions_car"},
	{"Bag", "backpack"},
	{"Garage", "garage"},
	{"Basement", "foundation"},
	{"Entryway", "door_front"},
	{"Garden", "yard"},
	{"School", "school"},
	{"Gym", "fitness_center"},
	{"Other", "place"},
}

// LocationOptions lists the built-in locations. Items may use any other
// string as well.
func LocationOptions() []LocationOption {
	out := make([]LocationOption, len(locationOptions))
	copy(out, locationOptions)
	return out
}

// LocationIcon returns the icon for a built-in label, "place" otherwise.
func LocationIcon(label string) string {
	for _, o := range locationOptions {
		if o.Label == label {
			return o.Icon
		}
	}
	return defaultLocationIcon
}
