package models

// ResolveRequest asks the resolver to look up a free-text place name.
type ResolveRequest struct {
	Query string `json:"query" validate:"required,min=1,max=120"`
}

// SelectRequest commits one disambiguation candidate by coordinate.
type SelectRequest struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country" validate:"required"`
	Point
}

// Candidate is one geocoding match offered for disambiguation.
type Candidate struct {
	Name        string  `json:"name"`
	AdminRegion string  `json:"adminRegion,omitempty"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// CurrentConditions is the presentation form of the current weather. Every
// temperature is served in both units so the client's unit toggle is a pure
// render concern.
type CurrentConditions struct {
	TemperatureC         float64 `json:"temperatureC"`
	TemperatureF         float64 `json:"temperatureF"`
	ApparentTemperatureC float64 `json:"apparentTemperatureC"`
	ApparentTemperatureF float64 `json:"apparentTemperatureF"`
	HumidityPct          float64 `json:"humidityPct"`
	WindSpeedKmh         float64 `json:"windSpeedKmh"`
	IsDay                bool    `json:"isDay"`
	WeatherCode          int     `json:"weatherCode"`
	Condition            string  `json:"condition"`
	ConditionGroup       string  `json:"conditionGroup"`
}

// DayForecast is one entry of the daily outlook.
type DayForecast struct {
	WeatherCode    int     `json:"weatherCode"`
	Condition      string  `json:"condition"`
	ConditionGroup string  `json:"conditionGroup"`
	TempMaxC       float64 `json:"tempMaxC"`
	TempMaxF       float64 `json:"tempMaxF"`
	TempMinC       float64 `json:"tempMinC"`
	TempMinF       float64 `json:"tempMinF"`
}

// LocalTime describes the clock at the resolved location.
type LocalTime struct {
	Time        string `json:"time"`
	Phase       string `json:"phase"`
	DayProgress int    `json:"dayProgress"`
}

// WeatherReport is the weather payload for a resolved location.
type WeatherReport struct {
	Label     string            `json:"label"`
	Lat       float64           `json:"lat"`
	Lon       float64           `json:"lon"`
	Timezone  string            `json:"timezone"`
	LocalTime *LocalTime        `json:"localTime,omitempty"`
	Current   CurrentConditions `json:"current"`
	Daily     []DayForecast     `json:"daily"`
	Favorite  bool              `json:"favorite"`
	FetchedAt Timestamp         `json:"fetchedAt"`
}

// WeatherState is the full resolver state returned by every weather endpoint.
type WeatherState struct {
	Phase      string         `json:"phase"`
	Report     *WeatherReport `json:"report,omitempty"`
	Candidates []Candidate    `json:"candidates,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}
