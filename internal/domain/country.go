package domain

import "slices"

type Country struct {
	Name   string `json:"name"`
	Alpha2 string `json:"alpha2"`
	Alpha3 string `json:"alpha3"`
	Region string `json:"region"`
}

var Regions = []string{"Europe", "Africa", "Americas", "Oceania", "Asia"}

func IsKnownRegion(region string) bool {
	return slices.Contains(Regions, region)
}
