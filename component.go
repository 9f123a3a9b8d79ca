package addrfmt

// Component identifies one field of a postal address.
type Component int

const (
	Attention Component = iota
	HouseNumber
	House
	Road
	Village
	Suburb
	City
	County
	Postcode
	StateDistrict
	State
	Region
	Island
	Neighbourhood
	Country
	CountryCodeComponent
	Continent

	numComponents
)

var componentNames = [numComponents]string{
	Attention:            "attention",
	HouseNumber:          "house_number",
	House:                "house",
	Road:                 "road",
	Village:              "village",
	Suburb:               "suburb",
	City:                 "city",
	County:               "county",
	Postcode:             "postcode",
	StateDistrict:        "state_district",
	State:                "state",
	Region:               "region",
	Island:               "island",
	Neighbourhood:        "neighbourhood",
	Country:              "country",
	CountryCodeComponent: "country_code",
	Continent:            "continent",
}

var componentsByName = func() map[string]Component {
	m := make(map[string]Component, numComponents)
	for c, name := range componentNames {
		m[name] = Component(c)
	}
	return m
}()

// String returns the snake_case name used in templates and rule files.
func (c Component) String() string {
	if c < 0 || c >= numComponents {
		return "unknown"
	}
	return componentNames[c]
}

// ParseComponent looks up a component by its snake_case name.
func ParseComponent(name string) (Component, bool) {
	c, ok := componentsByName[name]
	return c, ok
}

// Components returns every component in declaration order.
func Components() []Component {
	out := make([]Component, numComponents)
	for i := range out {
		out[i] = Component(i)
	}
	return out
}
