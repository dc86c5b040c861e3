// Package reverse links mapping methods with their inverse methods. It runs once
// before planning: an unconfigured method that reverses a configured one adopts
// that configuration.
package reverse

import (
	"github.com/sirupsen/logrus"

	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/logging"
	"mapper-planner/internal/model"
)

// Link records a configuration adopted from a reverse method.
type Link struct {
	// Method is the unconfigured method as declared.
	Method *model.Method
	// Linked is the substitute of Method carrying the adopted configuration.
	Linked *model.Method
	// Reverse is the configured method the configuration comes from.
	Reverse *model.Method
}

// Apply returns a new catalogue in which every unconfigured method requiring
// implementation that reverses a configured one shares that method's
// configuration. The first configured reverse in declaration order is used.
// The input catalogue is not modified.
func Apply(c *catalogue.Catalogue, log logrus.FieldLogger) (*catalogue.Catalogue, []Link) {
	log = logging.OrDiscard(log)

	methods := c.Methods()
	substitutes := make(map[*model.Method]*model.Method)

	var links []Link

	for _, m := range methods {
		if m.IsConfigured() {
			continue
		}

		for _, other := range methods {
			if other == m || !other.IsConfigured() || !m.Reverses(other) {
				continue
			}

			linked := m.WithReverseConfig(other)
			substitutes[m] = linked
			links = append(links, Link{Method: m, Linked: linked, Reverse: other})

			log.WithFields(logrus.Fields{
				"method":  m.Name,
				"reverse": other.Name,
				"kind":    model.KindOf(other.Config).String(),
			}).Debug("reverse: configuration adopted")

			break
		}
	}

	if len(substitutes) == 0 {
		return c, nil
	}

	return c.Substitute(substitutes), links
}
