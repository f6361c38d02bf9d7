package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// County maps a county of interest to the upstream identifiers used to
// request its alert feed. Zone is the UGC code ("TXZ103"); FIPS is the
// six-digit state+county FIPS code ("048121").
type County struct {
	Name  string `mapstructure:"name"`
	Zone  string `mapstructure:"zone"`
	FIPS  string `mapstructure:"fips"`
	State string `mapstructure:"state"`
}

// Locations is the reference data a deployment site supplies: which office
// issues its outlook, which counties to watch, the tier lists, and the
// icon-match table. It is read once at startup and never mutated.
type Locations struct {
	NWSAbbr      string   `mapstructure:"nws_abbr"`
	HWOSite      string   `mapstructure:"hwo_site"`
	ObsStation   string   `mapstructure:"obs_station"`
	RadarStation string   `mapstructure:"radar_station"`
	Counties     []County `mapstructure:"counties"`

	// Tier lists: lowercase event-type names per display tier.
	WarnEvents  []string `mapstructure:"warn_events"`
	WatchEvents []string `mapstructure:"watch_events"`
	AlertEvents []string `mapstructure:"alert_events"`

	// IconMatch maps an icon filename to the forecast descriptions it
	// represents.
	IconMatch map[string][]string `mapstructure:"icon_match"`
}

// LoadLocations reads and validates the location reference file.
func LoadLocations(path string) (*Locations, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var locs Locations
	if err := v.Unmarshal(&locs); err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}

	if locs.NWSAbbr == "" {
		return nil, fmt.Errorf("locations file %s: nws_abbr is required", path)
	}
	if locs.HWOSite == "" {
		return nil, fmt.Errorf("locations file %s: hwo_site is required", path)
	}
	if len(locs.Counties) == 0 {
		return nil, fmt.Errorf("locations file %s: at least one county is required", path)
	}
	for i, c := range locs.Counties {
		if c.Name == "" || c.Zone == "" {
			return nil, fmt.Errorf("locations file %s: county %d needs both name and zone", path, i)
		}
	}

	return &locs, nil
}

// CountyNames returns the configured county names in file order.
func (l *Locations) CountyNames() []string {
	names := make([]string, len(l.Counties))
	for i, c := range l.Counties {
		names[i] = c.Name
	}
	return names
}
