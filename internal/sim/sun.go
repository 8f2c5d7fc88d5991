package sim

import (
	"math"
	"time"
)

// SunModel computes true solar position and clear-sky plane-of-array
// irradiance for the configured site. Deterministic; no side effects.
type SunModel struct {
	latitude  float64 // degrees
	longitude float64 // degrees
	diffuse   float64 // sky diffuse floor, W/m²
	dniBase   float64 // direct-normal base, W/m²
	start     time.Time
}

func NewSunModel(cfg *Config) (*SunModel, error) {
	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}
	return &SunModel{
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		diffuse:   cfg.SkyDiffuse,
		dniBase:   cfg.DirectIrradianceBase,
		start:     start,
	}, nil
}

// Position returns the true solar elevation and azimuth in radians at the
// given elapsed offset (seconds) from the simulation start. Azimuth is
// measured clockwise from north, so π is due south.
func (s *SunModel) Position(elapsed float64) (elevation, azimuth float64) {
	t := s.start.Add(time.Duration(elapsed * float64(time.Second))).UTC()
	decl, eqTime := solarEphemeris(t)

	// Hour angle from the subsolar longitude.
	minutes := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	subsolarLon := (720 - (minutes + eqTime)) / 4
	ha := degToRad(wrapDeg180(s.longitude - subsolarLon))

	lat := degToRad(s.latitude)
	sinElev := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(ha)
	elevation = math.Asin(sinElev)

	cosElev := math.Cos(elevation)
	if math.Abs(cosElev) < 1e-9 {
		// Sun at zenith; azimuth is undefined, report south.
		return elevation, math.Pi
	}
	sinAzi := math.Cos(decl) * math.Sin(ha) / cosElev
	cosAzi := (sinElev*math.Sin(lat) - math.Sin(decl)) / (cosElev * math.Cos(lat))
	azimuth = math.Atan2(sinAzi, cosAzi) + math.Pi
	return elevation, azimuth
}

// Irradiance returns the clear-sky plane-of-array triple (direct, diffuse,
// global, W/m²) for a panel at the given tilt and azimuth (degrees). The
// direct component follows the angle-of-incidence cosine law and is clamped
// to zero when the sun is below the horizon; the diffuse component uses the
// isotropic sky-view factor.
func (s *SunModel) Irradiance(elapsed, panelTilt, panelAzimuth float64) (direct, diffuse, global float64) {
	elev, azi := s.Position(elapsed)

	if elev > 0 {
		direct = s.directOnPanel(elev, azi, panelTilt, panelAzimuth)
	}
	diffuse = s.diffuse * (1 + math.Cos(degToRad(panelTilt))) / 2
	global = direct + diffuse
	return direct, diffuse, global
}

// DirectOnPanel returns the direct irradiance incident on an arbitrarily
// oriented panel at the given elapsed offset.
func (s *SunModel) DirectOnPanel(elapsed, panelTilt, panelAzimuth float64) float64 {
	elev, azi := s.Position(elapsed)
	return s.directOnPanel(elev, azi, panelTilt, panelAzimuth)
}

// directOnPanel applies the angle-of-incidence cosine law:
// cos θ = sin(tilt)·sin(elev)·cos(panelAzi − sunAzi) + cos(tilt)·cos(elev),
// clamped non-negative and scaled by the direct-irradiance base.
func (s *SunModel) directOnPanel(sunElev, sunAzi, panelTilt, panelAzimuth float64) float64 {
	tilt := degToRad(panelTilt)
	cosInc := math.Sin(tilt)*math.Sin(sunElev)*math.Cos(degToRad(panelAzimuth)-sunAzi) +
		math.Cos(tilt)*math.Cos(sunElev)
	if cosInc < 0 {
		cosInc = 0
	}
	return s.dniBase * cosInc
}

// solarEphemeris returns the solar declination (radians) and the equation of
// time (minutes) for a UTC timestamp, using the simplified ephemeris from
// the Astronomical Almanac.
func solarEphemeris(t time.Time) (declination, eqTimeMin float64) {
	jd := julianDay(t)
	T := (jd - 2451545.0) / 36525.0

	L0 := math.Mod(280.46646+T*(36000.76983+T*0.0003032), 360)
	M := 357.52911 + T*(35999.05029-0.0001537*T)
	e := 0.016708634 - T*(0.000042037+0.0000001267*T)

	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+0.000014*T)) +
		math.Sin(degToRad(2*M))*(0.019993-0.000101*T) +
		math.Sin(degToRad(3*M))*0.000289

	trueLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := trueLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	eps0 := 23.0 + (26.0+(21.448-T*(46.815+T*(0.00059-0.001813*T)))/60.0)/60.0
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))

	declination = math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lambda)))

	y := math.Tan(degToRad(eps) / 2)
	y *= y
	eqTimeMin = 4 * radToDeg(
		y*math.Sin(2*degToRad(L0))-
			2*e*math.Sin(degToRad(M))+
			4*e*y*math.Sin(degToRad(M))*math.Cos(2*degToRad(L0))-
			0.5*y*y*math.Sin(4*degToRad(L0))-
			1.25*e*e*math.Sin(2*degToRad(M)))
	return declination, eqTimeMin
}

func julianDay(t time.Time) float64 {
	y, m, d := t.Date()
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	day := float64(d) +
		float64(t.Hour())/24 +
		float64(t.Minute())/1440 +
		float64(t.Second())/86400
	return float64(int(365.25*float64(y+4716))) + float64(int(30.6001*float64(m+1))) + day + float64(b) - 1524.5
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// wrapDeg180 wraps an angle in degrees into (-180, 180].
func wrapDeg180(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
