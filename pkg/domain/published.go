package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// sentinel texts shown instead of a date
const (
	NoDateAvailable   = "No date available"
	InvalidDateFormat = "Invalid date format"
)

// PublishedState tells which variant a Published value holds
type PublishedState int

// published states
const (
	PublishedMissing PublishedState = iota
	PublishedInvalid
	PublishedParsed
)

var publishedStateNames = map[PublishedState]string{
	PublishedMissing: "missing",
	PublishedInvalid: "invalid",
	PublishedParsed:  "parsed",
}

// String returns state name
func (s PublishedState) String() string {
	if name, ok := publishedStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Published is the publication date of an entry. It is either missing,
// present but unparseable (raw text kept), or a parsed timestamp.
type Published struct {
	State PublishedState
	Raw   string    // original text, set for invalid and parsed states
	Time  time.Time // set for parsed state only
}

// MissingPublished makes a published value for entries without a date
func MissingPublished() Published {
	return Published{State: PublishedMissing}
}

// InvalidPublished makes a published value for a date text which can't be parsed
func InvalidPublished(raw string) Published {
	return Published{State: PublishedInvalid, Raw: raw}
}

// ParsedPublished makes a published value for a parsed date
func ParsedPublished(raw string, t time.Time) Published {
	return Published{State: PublishedParsed, Raw: raw, Time: t}
}

// IsDate reports whether the value holds a real timestamp
func (p Published) IsDate() bool {
	return p.State == PublishedParsed
}

// String returns the presentation text, sentinel strings for missing and invalid dates
func (p Published) String() string {
	switch p.State {
	case PublishedParsed:
		return p.Time.Format(time.RFC1123Z)
	case PublishedInvalid:
		return InvalidDateFormat
	default:
		return NoDateAvailable
	}
}

type publishedJSON struct {
	State string     `json:"state"`
	Raw   string     `json:"raw,omitempty"`
	Time  *time.Time `json:"time,omitempty"`
}

// MarshalJSON encodes published as a tagged object
func (p Published) MarshalJSON() ([]byte, error) {
	res := publishedJSON{State: p.State.String(), Raw: p.Raw}
	if p.State == PublishedParsed {
		t := p.Time
		res.Time = &t
	}
	return json.Marshal(res)
}

// UnmarshalJSON decodes published from a tagged object
func (p *Published) UnmarshalJSON(data []byte) error {
	var res publishedJSON
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal published: %w", err)
	}
	switch res.State {
	case "missing", "":
		*p = MissingPublished()
	case "invalid":
		*p = InvalidPublished(res.Raw)
	case "parsed":
		if res.Time == nil {
			return fmt.Errorf("parsed published without time")
		}
		*p = ParsedPublished(res.Raw, *res.Time)
	default:
		return fmt.Errorf("unknown published state %q", res.State)
	}
	return nil
}
