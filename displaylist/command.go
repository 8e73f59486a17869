package displaylist

import (
	"fmt"

	"github.com/sunjay/kale"
)

// Op identifies an edit operation.
type Op uint8

const (
	OpPush      Op = iota + 1 // Append a primitive
	OpReplace                 // Swap the last primitive
	OpBeginFill               // Start a fill region
	OpEndFill                 // Commit the open fill region
	OpUndo                    // Move the last primitive to the redo stack
	OpRedo                    // Restore the last undone primitive
	OpClear                   // Empty the surface, keeping its pen
)

// opNames maps Op values to their string representation.
var opNames = [...]string{
	OpPush:      "Push",
	OpReplace:   "Replace",
	OpBeginFill: "BeginFill",
	OpEndFill:   "EndFill",
	OpUndo:      "Undo",
	OpRedo:      "Redo",
	OpClear:     "Clear",
}

// String returns the string representation of an Op.
func (o Op) String() string {
	if o > 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "None"
}

// Command is an edit addressed to one surface, in value form.
//
// Commands let edits be recorded, scripted, or queued across goroutines
// and applied later with Store.Apply. The set is closed; every
// implementation corresponds to one Store method.
type Command interface {
	// Surface returns the surface the command edits.
	Surface() SurfaceID
	// Op returns the edit operation.
	Op() Op

	isCommand()
}

// Push appends Primitive to the display list of ID. See Store.Push.
type Push struct {
	ID        SurfaceID
	Primitive kale.Primitive
}

// Replace swaps the last primitive of ID. See Store.Replace.
type Replace struct {
	ID        SurfaceID
	Primitive kale.Primitive
}

// BeginFill starts a fill region on ID. See Store.BeginFill.
type BeginFill struct {
	ID    SurfaceID
	Color kale.RGBA
}

// EndFill commits the open fill region of ID. See Store.EndFill.
type EndFill struct {
	ID SurfaceID
}

// Undo removes the last primitive of ID. See Store.Undo.
type Undo struct {
	ID SurfaceID
}

// Redo restores the last undone primitive of ID. See Store.Redo.
type Redo struct {
	ID SurfaceID
}

// Clear empties ID. See Store.Clear.
type Clear struct {
	ID SurfaceID
}

func (c Push) Surface() SurfaceID      { return c.ID }
func (c Replace) Surface() SurfaceID   { return c.ID }
func (c BeginFill) Surface() SurfaceID { return c.ID }
func (c EndFill) Surface() SurfaceID   { return c.ID }
func (c Undo) Surface() SurfaceID      { return c.ID }
func (c Redo) Surface() SurfaceID      { return c.ID }
func (c Clear) Surface() SurfaceID     { return c.ID }

func (Push) Op() Op      { return OpPush }
func (Replace) Op() Op   { return OpReplace }
func (BeginFill) Op() Op { return OpBeginFill }
func (EndFill) Op() Op   { return OpEndFill }
func (Undo) Op() Op      { return OpUndo }
func (Redo) Op() Op      { return OpRedo }
func (Clear) Op() Op     { return OpClear }

func (Push) isCommand()      {}
func (Replace) isCommand()   {}
func (BeginFill) isCommand() {}
func (EndFill) isCommand()   {}
func (Undo) isCommand()      {}
func (Redo) isCommand()      {}
func (Clear) isCommand()     {}

// String returns a short description of the command.
func (c Push) String() string {
	return fmt.Sprintf("Push(%d, %v)", c.ID, kindOf(c.Primitive))
}

// String returns a short description of the command.
func (c Replace) String() string {
	return fmt.Sprintf("Replace(%d, %v)", c.ID, kindOf(c.Primitive))
}

func kindOf(p kale.Primitive) string {
	if p == nil {
		return "<nil>"
	}
	return p.Kind().String()
}

// Apply performs cmd on the store. A nil command, or a Push or Replace
// without a primitive, is ignored.
func (s *Store) Apply(cmd Command) {
	switch c := cmd.(type) {
	case Push:
		s.Push(c.ID, c.Primitive)
	case Replace:
		s.Replace(c.ID, c.Primitive)
	case BeginFill:
		s.BeginFill(c.ID, c.Color)
	case EndFill:
		s.EndFill(c.ID)
	case Undo:
		s.Undo(c.ID)
	case Redo:
		s.Redo(c.ID)
	case Clear:
		s.Clear(c.ID)
	}
}

// ApplyAll performs cmds in order.
func (s *Store) ApplyAll(cmds ...Command) {
	for _, c := range cmds {
		s.Apply(c)
	}
}
