package model

import (
	"io"

	"github.com/gocarina/gocsv"
)

// csvRow flattens a Result for CSV export; the four sensor readings become
// individual columns.
type csvRow struct {
	Time            float64 `csv:"time"`
	SunElevation    float64 `csv:"sun_elevation"`
	SunAzimuth      float64 `csv:"sun_azimuth"`
	PanelTilt       float64 `csv:"panel_tilt"`
	PanelAzimuth    float64 `csv:"panel_azimuth"`
	Sensor0         float64 `csv:"sensor_0"`
	Sensor1         float64 `csv:"sensor_1"`
	Sensor2         float64 `csv:"sensor_2"`
	Sensor3         float64 `csv:"sensor_3"`
	TotalIrradiance float64 `csv:"total_irradiance"`
	POADirect       float64 `csv:"poa_dir"`
	POADiffuse      float64 `csv:"poa_dif"`
	POAGlobal       float64 `csv:"poa_glb"`
	DeltaAzimuth    float64 `csv:"delta_azimuth"`
	DeltaTilt       float64 `csv:"delta_tilt"`
	CloudCover      float64 `csv:"cloud_cover"`
}

// WriteResultsCSV writes one CSV row per result, with a header line.
func WriteResultsCSV(w io.Writer, results []Result) error {
	rows := make([]csvRow, len(results))
	for i, r := range results {
		rows[i] = csvRow{
			Time:            r.Time,
			SunElevation:    r.SunElevation,
			SunAzimuth:      r.SunAzimuth,
			PanelTilt:       r.PanelTilt,
			PanelAzimuth:    r.PanelAzimuth,
			Sensor0:         r.SensorReadings[0],
			Sensor1:         r.SensorReadings[1],
			Sensor2:         r.SensorReadings[2],
			Sensor3:         r.SensorReadings[3],
			TotalIrradiance: r.TotalIrradiance,
			POADirect:       r.POADirect,
			POADiffuse:      r.POADiffuse,
			POAGlobal:       r.POAGlobal,
			DeltaAzimuth:    r.DeltaAzimuth,
			DeltaTilt:       r.DeltaTilt,
			CloudCover:      r.CloudCover,
		}
	}
	return gocsv.Marshal(rows, w)
}
