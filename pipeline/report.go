package pipeline

import "github.com/minios-linux/rimloc/reconcile"

// Report summarises a run or scan of one project.
type Report struct {
	Project string
	Output  string
	// Missing lists ids with no directory in the workshop.
	Missing    []string
	Documents  int
	Templates  int
	Collisions int
	Units      []UnitReport
	// Packed is the number of mods listed in the pack metadata.
	Packed      int
	Interrupted bool
}

// UnitReport summarises one mod.
type UnitReport struct {
	ID   string
	Name string

	New      int
	Stale    int
	Reusable int

	Translated int
	Failed     int
	Fallback   int
	Files      int
	Memory     string
}

func (u *UnitReport) addPlan(p reconcile.Plan) {
	u.New += p.Count(reconcile.StatusNew)
	u.Stale += p.Count(reconcile.StatusStale)
	u.Reusable += p.Count(reconcile.StatusReusable)
}

func (u *UnitReport) add(r reconcile.Result) {
	u.addPlan(r.Plan)
	u.Translated += r.Translated
	u.Failed += r.Failed
	u.Fallback += r.Fallback
}

// Keys returns the number of keys seen.
func (u UnitReport) Keys() int { return u.New + u.Stale + u.Reusable }

// Totals sums the unit reports.
func (r *Report) Totals() UnitReport {
	var t UnitReport
	for _, u := range r.Units {
		t.New += u.New
		t.Stale += u.Stale
		t.Reusable += u.Reusable
		t.Translated += u.Translated
		t.Failed += u.Failed
		t.Fallback += u.Fallback
		t.Files += u.Files
	}
	return t
}
