// Package bugfix holds named corrections for retail credits files.
// Fixes operate on the canonical text form produced by
// staffroll.EncodeText.
package bugfix

import (
	"sort"
	"strings"

	"github.com/FocuswithJustin/StaffrollTool/core/errors"
)

// Fix is one text-level correction.
type Fix struct {
	ID          string
	Description string
	Old         string
	New         string
}

// Apply replaces every occurrence of f.Old in txt.
func (f Fix) Apply(txt string) string {
	return strings.ReplaceAll(txt, f.Old, f.New)
}

// registry is applied in this order.
var registry = []Fix{
	{
		ID:          "P00000",
		Description: `voice actress credited as "Catey Sagoian" instead of "Caety Sagoian"`,
		Old:         "Catey Sagoian",
		New:         "Caety Sagoian",
	},
	{
		ID:          "P00100",
		Description: `"SOUND EFFECTS" section titled "SOUND EFFECT"`,
		Old:         "<bold>SOUND EFFECT</bold>",
		New:         "<bold>SOUND EFFECTS</bold>",
	},
}

// Lookup returns the fix registered under id.
func Lookup(id string) (Fix, error) {
	for _, f := range registry {
		if f.ID == id {
			return f, nil
		}
	}
	return Fix{}, errors.NewNotFound("bugfix", id)
}

// IDs lists every known bug ID in sorted order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, f := range registry {
		ids[i] = f.ID
	}
	sort.Strings(ids)
	return ids
}

// Apply runs the fixes named in bugs over txt in registry order, so the
// result does not depend on the order of bugs. Unknown IDs are ignored;
// use Lookup to report them. The bool is true when txt changed.
func Apply(txt string, bugs []string) (string, bool) {
	want := make(map[string]bool, len(bugs))
	for _, id := range bugs {
		want[id] = true
	}
	out := txt
	for _, f := range registry {
		if want[f.ID] {
			out = f.Apply(out)
		}
	}
	return out, out != txt
}
