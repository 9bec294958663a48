package config

import "github.com/xeptore/jamsconv/constant"

var (
	DefaultWorkers           = 8
	DefaultIdentitySeparator = "<SEP>"
	DefaultOutputExtension   = constant.DefaultOutputExtension
)

// Categories are the Isophonics annotation categories a keyword can be
// configured for.
var Categories = []string{"beat", "chord", "key", "segment"}

func defaultKeywords() map[string]string {
	return map[string]string{
		"beat":    "beat",
		"chord":   "chordlab",
		"key":     "keylab",
		"segment": "seglab",
	}
}

func defaultExtensions() map[string]int {
	return map[string]int{
		".lab": 5,
		".txt": 4,
	}
}
