package url

import (
	"fmt"
	"github.com/epiclabs-io/elastic"
	"net/url"
)

// Parse converts the named query value into result, leaving result
// untouched when the value is absent.
func Parse(name string, values url.Values, result interface{}) error {
	str := values.Get(name)
	if str == "" {
		return nil
	}
	if err := elastic.Set(result, str); err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, str, err)
	}
	return nil
}

func ParseInt(name string, values url.Values, result *int) error {
	return Parse(name, values, result)
}

func ParseInt64(name string, values url.Values, result *int64) error {
	return Parse(name, values, result)
}

func ParseUint64(name string, values url.Values, result *uint64) error {
	return Parse(name, values, result)
}

func ParseBool(name string, values url.Values, result *bool) error {
	return Parse(name, values, result)
}
