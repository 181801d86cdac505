package scheduler

import (
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// ApplyCreationPolicy decides, once at creation time, whether a
// cadence-bearing contest becomes a master template or a self-generating
// regular contest, and seeds its next generation date.
//
// forceTemplate may only be set by administrative callers creating
// master templates. A regular recurring contest differs from a template
// only in joinability: both carry a next_generation_date and spawn
// successors.
func ApplyCreationPolicy(c *model.Contest, forceTemplate bool) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if !c.Cadence.Recurring() {
		c.IsRecurringTemplate = false
		c.ParentContestID = nil
		c.NextGenerationDate = nil
		return nil
	}

	c.IsRecurringTemplate = forceTemplate
	c.NextGenerationDate = c.NextGeneration()
	return nil
}
