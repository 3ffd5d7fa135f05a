// internal/workers/specialists/soil-weather-report/render.go
package soilweatherreport

import (
	"fmt"
	"strings"

	"agri-saarathi/internal/models"
)

const rule = "---------------------------------------------"

// LocationRequest replaces the report when no place was given at all.
const LocationRequest = "Please tell me your village, town or district so I can check the soil and weather there."

// Render prints the report as the sectioned text the answer writer reads.
func Render(r *models.SoilWeatherReport) string {
	var b strings.Builder

	if !r.CoordinatesFound && r.Location == "" {
		return LocationRequest
	}
	if !r.CoordinatesFound {
		b.WriteString(fmt.Sprintf(coordinatesNote, r.Location))
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Found coordinates for '%s': Latitude=%.6f, Longitude=%.6f\n\n",
		displayName(r), r.Coordinates.Latitude, r.Coordinates.Longitude)

	b.WriteString("--- 1. Soil Type (Point Location) ---\n")
	if writeUnavailable(&b, r.SoilType.Status, r.SoilType.Note) {
		fmt.Fprintf(&b, "Most Probable Soil Type: %s\n", r.SoilType.MostProbable)
		fmt.Fprintf(&b, "Top %d Probabilities:\n", len(r.SoilType.Probabilities))
		for _, p := range r.SoilType.Probabilities {
			fmt.Fprintf(&b, "  - Soil Type: %s, Probability: %.4f\n", p.SoilType, p.Probability)
		}
	}
	b.WriteString(rule + "\n")

	b.WriteString("\n--- 2. Soil Properties (Point Location) ---\n")
	if writeUnavailable(&b, r.SoilProperties.Status, r.SoilProperties.Note) {
		for _, layer := range r.SoilProperties.Layers {
			fmt.Fprintf(&b, "Soil Property: %s (%s)\n", layer.Name, layer.Unit)
			for _, d := range layer.Depths {
				fmt.Fprintf(&b, "  - Depth %s: Mean = %s, 5th Percentile = %s\n", d.Label, number(d.Mean), number(d.Q05))
			}
		}
	}
	b.WriteString(rule + "\n")

	box := r.SoilSummary.BoundingBox
	b.WriteString("\n--- 3. Soil Type Summary (Bounding Box) ---\n")
	fmt.Fprintf(&b, "Bounding box:\n  Lat: %.3f to %.3f\n  Lon: %.3f to %.3f\n", box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if writeUnavailable(&b, r.SoilSummary.Status, r.SoilSummary.Note) {
		b.WriteString("Soil Type Counts in Bounding Box:\n")
		if r.SoilSummary.Status == models.StatusNoData {
			b.WriteString("  " + r.SoilSummary.Note + "\n")
		}
		for _, c := range r.SoilSummary.Counts {
			fmt.Fprintf(&b, "  - Soil Type: %s, Count: %d\n", c.SoilType, c.Count)
		}
	}
	b.WriteString(rule + "\n")

	w := r.Weather
	b.WriteString("\n--- 4. Current Weather Conditions ---\n")
	if writeUnavailable(&b, w.Status, w.Note) {
		condition := w.Condition
		if condition == "" {
			condition = "N/A"
		}
		fmt.Fprintf(&b, "Condition: %s\n", condition)
		fmt.Fprintf(&b, "Temperature: %s°C\n", number(w.TemperatureC))
		if w.HumidityPercent != nil {
			fmt.Fprintf(&b, "Humidity: %s%%\n", number(w.HumidityPercent))
		} else {
			b.WriteString("Humidity: N/A\n")
		}
		fmt.Fprintf(&b, "Wind: %s kph from direction %s°\n", number(w.WindSpeedKph), number(w.WindDirectionDeg))
	}
	b.WriteString(rule + "\n")

	v := r.Vegetation
	b.WriteString("\n--- 5. Vegetation Index (Simulated) ---\n")
	fmt.Fprintf(&b, "NDVI Value: %g\n", v.Index)
	fmt.Fprintf(&b, "Interpretation: %s\n", v.Interpretation)
	b.WriteString(rule + "\n")

	return b.String()
}

// writeUnavailable writes the note for a failed section and reports whether
// the section body should still be written.
func writeUnavailable(b *strings.Builder, status models.FieldStatus, note string) bool {
	if status == models.StatusUnavailable || status == models.StatusSkipped {
		fmt.Fprintf(b, "Unavailable: %s\n", note)
		return false
	}
	return true
}

func displayName(r *models.SoilWeatherReport) string {
	if r.FormattedAddress != "" {
		return r.FormattedAddress
	}
	return r.Location
}

func number(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *v)
}
