package forecast

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit.
func CelsiusToFahrenheit(tempC float64) float64 {
	return tempC*9/5 + 32
}
