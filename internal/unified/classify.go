package unified

import (
	"errors"
	"fmt"

	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/diffview"
)

// ErrMismatch is wrapped when a rendered row cannot be classified as context, add or remove.
var ErrMismatch = errors.New("unclassifiable diff row")

// Classify reads t back into Lines.
//
// A skipped group yields a Skip. Rows of an unmodified group must carry both line numbers and yield Context. In any other group a row yields a Remove
// when it has an old line number and an Add when it has a new one; the group's Adds follow its Removes, so a paired side-by-side row of a modified run
// contributes to both halves. A row with neither number is an error.
func Classify(t diffview.Table) ([]Line, error) {
	var out []Line
	for gi, g := range t.Groups {
		if g.Kind == diffmodel.Skipped {
			out = append(out, Skip{Section: g.Section})
			continue
		}
		var adds []Line
		for ri, r := range g.Rows {
			if r.IsSkip() {
				return nil, fmt.Errorf("%w: group[%d].row[%d]: skip row inside a %s group", ErrMismatch, gi, ri, g.Kind)
			}
			oldNum, hasOld := r.BaseNum()
			newNum, hasNew := r.ChangedNum()
			if !hasOld && !hasNew {
				return nil, fmt.Errorf("%w: group[%d].row[%d]: no line number on either side", ErrMismatch, gi, ri)
			}
			if g.Kind == diffmodel.Unmodified {
				if !hasOld || !hasNew {
					return nil, fmt.Errorf("%w: group[%d].row[%d]: unmodified row needs both line numbers", ErrMismatch, gi, ri)
				}
				out = append(out, Context{Old: oldNum, New: newNum, Text: r.Content(diffview.SideBase)})
				continue
			}
			if hasOld {
				out = append(out, Remove{Old: oldNum, Text: r.Content(diffview.SideBase)})
			}
			if hasNew {
				adds = append(adds, Add{New: newNum, Text: r.Content(diffview.SideChanged)})
			}
		}
		out = append(out, adds...)
	}
	return out, nil
}
