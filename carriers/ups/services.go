package ups

import "strings"

var defaultServices = map[string]string{
	"01": "UPS Next Day Air",
	"02": "UPS Second Day Air",
	"03": "UPS Ground",
	"07": "UPS Worldwide Express",
	"08": "UPS Worldwide Expedited",
	"11": "UPS Standard",
	"12": "UPS Three-Day Select",
	"13": "UPS Next Day Air Saver",
	"14": "UPS Next Day Air Early A.M.",
	"54": "UPS Worldwide Express Plus",
	"59": "UPS Second Day Air A.M.",
	"65": "UPS Saver",
	"82": "UPS Today Standard",
	"83": "UPS Today Dedicated Courier",
	"84": "UPS Today Intercity",
	"85": "UPS Today Express",
	"86": "UPS Today Express Saver",
}

var canadaOriginServices = map[string]string{
	"01": "UPS Express",
	"02": "UPS Expedited",
	"14": "UPS Express Early A.M.",
}

var mexicoOriginServices = map[string]string{
	"07": "UPS Express",
	"08": "UPS Expedited",
	"54": "UPS Express Plus",
}

var euOriginServices = map[string]string{
	"07": "UPS Express",
	"08": "UPS Expedited",
}

var otherNonUSOriginServices = map[string]string{
	"07": "UPS Express",
}

// EUCountryCodes is the EU membership as of November 2007, which is the list
// the carrier's origin rules were published against.
var EUCountryCodes = []string{
	"GB", "AT", "BE", "BG", "CY", "CZ", "DK", "EE", "FI", "FR", "DE", "GR", "HU", "IE",
	"IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK", "SI", "ES", "SE",
}

// USTerritories are US territories the carrier treats as countries.
var USTerritories = []string{"AS", "FM", "GU", "MH", "MP", "PW", "PR", "VI"}

type serviceTable struct {
	name     string
	applies  func(origin string) bool
	services map[string]string
}

// serviceTables is evaluated top-down; the first table whose predicate holds
// and which knows the code wins.
var serviceTables = []serviceTable{
	{"canada", isCountry("CA"), canadaOriginServices},
	{"mexico", isCountry("MX"), mexicoOriginServices},
	{"eu", isEUCountry, euOriginServices},
	{"other-non-us", func(origin string) bool { return origin != "US" }, otherNonUSOriginServices},
	{"default", func(string) bool { return true }, defaultServices},
}

// ServiceName resolves a rating service code to its name for shipments leaving
// originCountry. ok is false when no table knows the code.
func ServiceName(originCountry, code string) (name string, ok bool) {
	origin := strings.ToUpper(strings.TrimSpace(originCountry))
	for _, table := range serviceTables {
		if !table.applies(origin) {
			continue
		}
		if name, ok = table.services[code]; ok {
			return name, true
		}
	}
	return "", false
}

func isCountry(code string) func(string) bool {
	return func(origin string) bool { return origin == code }
}

func isEUCountry(origin string) bool {
	for _, c := range EUCountryCodes {
		if c == origin {
			return true
		}
	}
	return false
}

// tntToRatingServiceCodes only holds for US and Canada origins.
var tntToRatingServiceCodes = map[string]string{
	"1DM":  "14",
	"1DA":  "01",
	"1DP":  "13",
	"2DM":  "59",
	"2DA":  "02",
	"3DS":  "12",
	"GND":  "03",
	"1DMS": "14",
	"1DAS": "01",
	"2DAS": "59",
	"24":   "01",
	"19":   "02",
	"01":   "07",
	"09":   "07",
	"05":   "08",
	"21":   "54",
	"23":   "14",
	"03":   "11",
	"25":   "11",
	"68":   "11",
	"33":   "12",
	"20":   "65",
	"28":   "65",
}

// RatingServiceCode maps a time-in-transit service code to the rating service
// code for the same product.
func RatingServiceCode(tntCode string) (string, bool) {
	code, ok := tntToRatingServiceCodes[strings.ToUpper(strings.TrimSpace(tntCode))]
	return code, ok
}
