package slip

// ComputeNet is the net (billable) weight: gross minus tare.
func ComputeNet(gross, tare float64) float64 { return gross - tare }
