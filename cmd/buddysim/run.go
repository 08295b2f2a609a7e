package main

import (
	"fmt"

	"github.com/micropuppy/buddyalloc/pagealloc"
)

// runWorkload loads path, constructs a zone per configured entry, and
// executes every step in order against its named zone.
func runWorkload(path string) error {
	w, err := loadWorkload(path)
	if err != nil {
		return err
	}

	zones := make(map[string]*zone, len(w.Zones))
	for _, cfg := range w.Zones {
		z, err := newZone(cfg)
		if err != nil {
			return err
		}
		zones[cfg.Name] = z
		log.WithFields(map[string]interface{}{"zone": cfg.Name, "size_bytes": cfg.SizeBytes}).Info("zone created")
	}

	allocations := make(map[string]pagealloc.Allocation)
	for i, step := range w.Steps {
		z, ok := zones[step.Zone]
		if !ok {
			return fmt.Errorf("buddysim: step %d references unknown zone %q", i, step.Zone)
		}
		if err := z.runStep(step, allocations, log); err != nil {
			return fmt.Errorf("buddysim: step %d: %w", i, err)
		}
	}

	for _, cfg := range w.Zones {
		z := zones[cfg.Name]
		log.WithFields(map[string]interface{}{"zone": z.name, "live_pages": z.liveOccupancy()}).Info("final occupancy")
	}

	return nil
}
