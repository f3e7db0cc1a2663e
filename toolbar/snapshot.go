/* Package toolbar implements the two auxiliary layer surfaces (top bar and
side bar) that sit outside the drawing canvas: their layout, hit-region
vectors, and the press/motion/release to Intent mapping. The backend owns
the actual wl_surface/SHM lifecycle for the canvas; toolbar mirrors that
same split (lifecycle + hit + structs, spec.md §9's consolidation
decision) for its own two surfaces (spec.md §4.10). */
package toolbar

import "github.com/friedelschoen/scrawl"

/* Mode controls how much of the toolbar is shown: Simple hides advanced
rows (board list, preset editor), Advanced shows everything, Regular is
the default middle ground (spec.md §6 "toolbar section flags"). */
type Mode int

const (
	ModeSimple Mode = iota
	ModeRegular
	ModeAdvanced
)

/* Snapshot is an immutable, per-frame view of the state the toolbar needs
to lay itself out. The backend builds one from InputState every frame;
Surface.Update only recomputes layout when it differs from the previous
snapshot (spec.md §4.10). */
type Snapshot struct {
	Tool       scrawl.Tool
	Color      scrawl.Color
	Thickness  float64
	FontSize   float64
	Presets    scrawl.PresetTable
	BoardName  string
	BoardIndex int
	BoardCount int
	Mode       Mode
	Visible    bool
	DrawerOpen bool
}

func (s Snapshot) equal(o Snapshot) bool {
	return s == o
}
