package forecast

// Condition is the general weather condition derived from a WMO code.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionCloudy       Condition = "CLOUDY"
	ConditionFog          Condition = "FOG"
	ConditionDrizzle      Condition = "DRIZZLE"
	ConditionRain         Condition = "RAIN"
	ConditionSnow         Condition = "SNOW"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionUnknown      Condition = "UNKNOWN"
)

type codeInfo struct {
	label     string
	condition Condition
}

// WMO weather interpretation codes (WW) carried by Open-Meteo responses.
var weatherCodes = map[int]codeInfo{
	0:  {"CLEAR SKY", ConditionClear},
	1:  {"MAINLY CLEAR", ConditionClear},
	2:  {"PARTLY CLOUDY", ConditionCloudy},
	3:  {"OVERCAST", ConditionCloudy},
	45: {"FOG", ConditionFog},
	48: {"RIME FOG", ConditionFog},
	51: {"LIGHT DRIZZLE", ConditionDrizzle},
	53: {"MODERATE DRIZZLE", ConditionDrizzle},
	55: {"DENSE DRIZZLE", ConditionDrizzle},
	61: {"SLIGHT RAIN", ConditionRain},
	63: {"MODERATE RAIN", ConditionRain},
	65: {"HEAVY RAIN", ConditionRain},
	71: {"SLIGHT SNOW", ConditionSnow},
	73: {"MODERATE SNOW", ConditionSnow},
	75: {"HEAVY SNOW", ConditionSnow},
	95: {"THUNDERSTORM", ConditionThunderstorm},
}

// CodeLabel returns the upper-case display label for a WMO weather code.
// Unknown codes fall back to "UNKNOWN" rather than defaulting to a real
// condition, so misleading weather is never displayed.
func CodeLabel(code int) string {
	if info, ok := weatherCodes[code]; ok {
		return info.label
	}
	return "UNKNOWN"
}

// CodeCondition returns the general condition for a WMO weather code.
func CodeCondition(code int) Condition {
	if info, ok := weatherCodes[code]; ok {
		return info.condition
	}
	return ConditionUnknown
}
