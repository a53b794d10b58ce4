package weather

// Temperature band thresholds in celsius.
const (
	hotThreshold  = 27.0
	warmThreshold = 20.0
	mildThreshold = 12.0
	coolThreshold = 5.0

	windyThresholdKmh = 25.0
)

// Conditions describes current weather at a location.
type Conditions struct {
	TemperatureC float64 `json:"temperatureC"`
	ApparentC    float64 `json:"apparentC"`
	Rain         float64 `json:"rain"`
	Snowfall     float64 `json:"snowfall"`
	WeatherCode  int     `json:"weatherCode"`
	WindSpeedKmh float64 `json:"windSpeedKmh"`
}

// Compatibility returns the weather labels these conditions match,
// in the same vocabulary items carry in their weatherCompatibility
// field. Exactly one temperature band is always present; rain, snow,
// and windy are added when they apply.
func (c *Conditions) Compatibility() []string {
	labels := []string{c.temperatureBand()}
	if c.Snowing() {
		labels = append(labels, "snow")
	} else if c.Raining() {
		labels = append(labels, "rain")
	}
	if c.WindSpeedKmh >= windyThresholdKmh {
		labels = append(labels, "windy")
	}
	return labels
}

func (c *Conditions) temperatureBand() string {
	switch {
	case c.TemperatureC >= hotThreshold:
		return "hot"
	case c.TemperatureC >= warmThreshold:
		return "warm"
	case c.TemperatureC >= mildThreshold:
		return "mild"
	case c.TemperatureC >= coolThreshold:
		return "cool"
	default:
		return "cold"
	}
}

// Raining reports measurable rain, either from the rain gauge or a
// rainy WMO weather code (drizzle 51-57, rain 61-67, showers 80-82,
// thunderstorm 95-99).
func (c *Conditions) Raining() bool {
	if c.Rain > 0 {
		return true
	}
	code := c.WeatherCode
	return (code >= 51 && code <= 67) || (code >= 80 && code <= 82) || (code >= 95 && code <= 99)
}

// Snowing reports measurable snow, either from the gauge or a snowy
// WMO weather code (snow 71-77, snow showers 85-86).
func (c *Conditions) Snowing() bool {
	if c.Snowfall > 0 {
		return true
	}
	code := c.WeatherCode
	return (code >= 71 && code <= 77) || code == 85 || code == 86
}

// wmoSummaries maps WMO weather interpretation codes to short
// human-readable summaries.
//
//nolint:gochecknoglobals // Static lookup table
var wmoSummaries = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snowfall",
	73: "Moderate snowfall",
	75: "Heavy snowfall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Summary returns a short description of the current weather code.
func (c *Conditions) Summary() string {
	if s, ok := wmoSummaries[c.WeatherCode]; ok {
		return s
	}
	return "Unknown conditions"
}
