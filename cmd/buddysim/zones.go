package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/micropuppy/buddyalloc/ledger"
	"github.com/micropuppy/buddyalloc/pagealloc"
)

// zone pairs a named pagealloc.Allocator with an independent ledger used
// only for this command's occupancy reporting.
type zone struct {
	name  string
	alloc *pagealloc.Allocator
	live  *ledger.Ledger
}

func newZone(cfg zoneConfig) (*zone, error) {
	if cfg.SizeBytes%pagealloc.PageSize != 0 {
		return nil, fmt.Errorf("zone %q: size_bytes %d is not a multiple of the page size", cfg.Name, cfg.SizeBytes)
	}
	region := make([]byte, cfg.SizeBytes)
	return &zone{
		name:  cfg.Name,
		alloc: pagealloc.New(region, cfg.StartAddr),
		live:  ledger.New(),
	}, nil
}

// runStep executes one workload step against the zone's allocator, logging
// the result. allocations maps handle names (assigned by earlier "allocate"
// steps) to the resulting pagealloc.Allocation, so a later "free" step can
// reference them.
func (z *zone) runStep(step stepConfig, allocations map[string]pagealloc.Allocation, log *logrus.Logger) error {
	switch step.Op {
	case "allocate":
		a, err := z.alloc.Allocate(step.Blocks)
		if err != nil {
			log.WithFields(logrus.Fields{"zone": z.name, "blocks": step.Blocks}).Warnf("allocate failed: %v", err)
			return err
		}
		offsetPages := (uint64(a.Ptr)) / pagealloc.PageSize
		sizePages := uint64(a.Size) / pagealloc.PageSize
		if err := z.live.Record(offsetPages, sizePages); err != nil {
			return fmt.Errorf("zone %q: ledger rejected allocator result %+v: %w", z.name, a, err)
		}
		if step.Handle != "" {
			allocations[step.Handle] = a
		}
		log.WithFields(logrus.Fields{"zone": z.name, "ptr": a}).Info("allocate")
		return nil

	case "free":
		a, ok := allocations[step.Handle]
		if !ok {
			return fmt.Errorf("zone %q: free step references unknown handle %q", z.name, step.Handle)
		}
		if err := z.alloc.Free(a); err != nil {
			log.WithFields(logrus.Fields{"zone": z.name, "ptr": a}).Warnf("free failed: %v", err)
			return err
		}
		offsetPages := (uint64(a.Ptr)) / pagealloc.PageSize
		sizePages := uint64(a.Size) / pagealloc.PageSize
		if err := z.live.Release(offsetPages, sizePages); err != nil {
			return fmt.Errorf("zone %q: ledger rejected release of %+v: %w", z.name, a, err)
		}
		delete(allocations, step.Handle)
		log.WithFields(logrus.Fields{"zone": z.name, "ptr": a}).Info("free")
		return nil

	default:
		return fmt.Errorf("zone %q: unknown step op %q", z.name, step.Op)
	}
}

// liveOccupancy reports how many pages are currently allocated in the zone.
func (z *zone) liveOccupancy() int { return z.live.LiveUnits() }
