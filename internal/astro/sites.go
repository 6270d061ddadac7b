package astro

import (
	"fmt"
	"sort"
)

// Site is a named observer location.
type Site struct {
	Name   string
	LatDeg float64 // north positive
	LonDeg float64 // east positive
}

// DefaultSiteName is the location a fresh session starts at.
const DefaultSiteName = "Pittsburgh"

// knownSites lists the observer locations a session can pick from. Names are
// written into save files, so they must not contain '.'.
var knownSites = map[string]Site{
	"Pittsburgh":   {Name: "Pittsburgh", LatDeg: 40.4406, LonDeg: -79.9959},
	"Goldstone":    {Name: "Goldstone", LatDeg: 35.4267, LonDeg: -116.8900},
	"Canberra":     {Name: "Canberra", LatDeg: -35.4014, LonDeg: 148.9817},
	"Madrid":       {Name: "Madrid", LatDeg: 40.4314, LonDeg: -4.2481},
	"London":       {Name: "London", LatDeg: 51.5072, LonDeg: -0.1276},
	"New York":     {Name: "New York", LatDeg: 40.7128, LonDeg: -74.0060},
	"Los Angeles":  {Name: "Los Angeles", LatDeg: 34.0522, LonDeg: -118.2437},
	"Reykjavik":    {Name: "Reykjavik", LatDeg: 64.1466, LonDeg: -21.9426},
	"Tokyo":        {Name: "Tokyo", LatDeg: 35.6762, LonDeg: 139.6503},
	"Sydney":       {Name: "Sydney", LatDeg: -33.8688, LonDeg: 151.2093},
	"Cape Town":    {Name: "Cape Town", LatDeg: -33.9249, LonDeg: 18.4241},
	"Buenos Aires": {Name: "Buenos Aires", LatDeg: -34.6037, LonDeg: -58.3816},
	"Quito":        {Name: "Quito", LatDeg: -0.1807, LonDeg: -78.4678},
}

// SiteByName returns the named site.
func SiteByName(name string) (Site, error) {
	site, ok := knownSites[name]
	if !ok {
		return Site{}, fmt.Errorf("unknown location %q", name)
	}
	return site, nil
}

// SiteNames returns all site names, the default site first and the rest
// sorted.
func SiteNames() []string {
	names := make([]string, 0, len(knownSites))
	for name := range knownSites {
		if name != DefaultSiteName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultSiteName}, names...)
}

// DefaultSite returns the start-up location.
func DefaultSite() Site {
	return knownSites[DefaultSiteName]
}
