package types

import (
	"encoding/json"
	"strconv"
)

// Unknown is the sentinel written for absent categorical and numeric values.
const Unknown = "Unknown"

// Years is a count of experience years that may be unknown.
type Years struct {
	Value int
	Known bool
}

// KnownYears returns a known Years value.
func KnownYears(n int) Years {
	return Years{Value: n, Known: true}
}

// UnknownYears returns the unknown Years value.
func UnknownYears() Years {
	return Years{}
}

func (y Years) String() string {
	if !y.Known {
		return Unknown
	}
	return strconv.Itoa(y.Value)
}

// ParseYears reads the String form back. Anything that is not an integer is unknown.
func ParseYears(s string) Years {
	n, err := strconv.Atoi(s)
	if err != nil {
		return UnknownYears()
	}
	return KnownYears(n)
}

// MarshalJSON writes known values as numbers and unknown values as "Unknown".
func (y Years) MarshalJSON() ([]byte, error) {
	if !y.Known {
		return json.Marshal(Unknown)
	}
	return json.Marshal(y.Value)
}

// UnmarshalJSON accepts a number or any string.
func (y *Years) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = KnownYears(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*y = ParseYears(s)
	return nil
}
