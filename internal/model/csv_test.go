package model

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultsCSV(t *testing.T) {
	results := []Result{
		{
			Time:            0,
			SunElevation:    20.5,
			SunAzimuth:      95.0,
			PanelTilt:       30,
			PanelAzimuth:    180,
			SensorReadings:  [4]float64{810.1, 805.2, 790.3, 795.4},
			TotalIrradiance: 3201,
			POADirect:       900,
			POADiffuse:      46.6,
			POAGlobal:       946.6,
			DeltaAzimuth:    -1.2,
			DeltaTilt:       0.4,
			CloudCover:      0.05,
		},
		{Time: 5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, results))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header plus one row per result

	assert.Equal(t, []string{
		"time", "sun_elevation", "sun_azimuth", "panel_tilt", "panel_azimuth",
		"sensor_0", "sensor_1", "sensor_2", "sensor_3",
		"total_irradiance", "poa_dir", "poa_dif", "poa_glb",
		"delta_azimuth", "delta_tilt", "cloud_cover",
	}, records[0])

	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "20.5", records[1][1])
	assert.Equal(t, "810.1", records[1][5])
	assert.Equal(t, "795.4", records[1][8])
	assert.Equal(t, "-1.2", records[1][13])
	assert.Equal(t, "5", records[2][0])
}

func TestWriteResultsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestControllerTypeValid(t *testing.T) {
	for _, ct := range []ControllerType{
		ControllerDifferential, ControllerPerturbObserve, ControllerOptimal, ControllerHybrid,
	} {
		assert.True(t, ct.Valid(), ct)
	}
	assert.False(t, ControllerType("pid").Valid())
	assert.False(t, ControllerType("").Valid())
}
