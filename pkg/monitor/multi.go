package monitor

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Multi combines several backends into one. Displays are enumerated
// in backend order, so DDC displays keep their indices when a laptop
// panel is appended after them. A backend that fails to enumerate is
// skipped with a debug log; enumeration only fails as a whole when
// every backend failed.
type Multi struct {
	backends []Backend
	log      zerolog.Logger
}

func NewMulti(log zerolog.Logger, backends ...Backend) *Multi {
	return &Multi{backends: backends, log: log}
}

func (m *Multi) Name() string {
	names := make([]string, 0, len(m.backends))
	for _, b := range m.backends {
		names = append(names, b.Name())
	}
	return strings.Join(names, "+")
}

func (m *Multi) Enumerate() ([]Display, error) {
	var displays []Display
	var failures []error
	for _, b := range m.backends {
		found, err := b.Enumerate()
		if err != nil {
			m.log.Debug().Err(err).Str("backend", b.Name()).Msg("backend enumeration failed")
			failures = append(failures, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		m.log.Debug().Str("backend", b.Name()).Int("displays", len(found)).Msg("enumerated")
		displays = append(displays, found...)
	}
	if len(displays) == 0 && len(failures) == len(m.backends) && len(failures) > 0 {
		return nil, failures[0]
	}
	return displays, nil
}
