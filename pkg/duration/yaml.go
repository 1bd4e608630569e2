package duration

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML using the same
// grammar the command line accepts, so "backoff: 500ms" in a config file
// and "--backoff 500ms" behave identically.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped value as a standard time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
