package canvas

// PatchOp is the type of a recorded canvas mutation.
type PatchOp uint8

const (
	PatchCreateText    PatchOp = 0x01 // Create a detached text node
	PatchCreateElement PatchOp = 0x02 // Create a detached element
	PatchSetStyle      PatchOp = 0x03 // Set or clear a style property
	PatchSetAttr       PatchOp = 0x04 // Set or clear an attribute
	PatchListen        PatchOp = 0x05 // Attach a click listener
	PatchUnlisten      PatchOp = 0x06 // Detach a click listener
	PatchAppend        PatchOp = 0x07 // Append child to parent
	PatchInsertBefore  PatchOp = 0x08 // Insert child before a sibling
	PatchReplace       PatchOp = 0x09 // Replace a child in place
	PatchRemove        PatchOp = 0x0A // Detach an element
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchCreateText:
		return "CreateText"
	case PatchCreateElement:
		return "CreateElement"
	case PatchSetStyle:
		return "SetStyle"
	case PatchSetAttr:
		return "SetAttr"
	case PatchListen:
		return "Listen"
	case PatchUnlisten:
		return "Unlisten"
	case PatchAppend:
		return "Append"
	case PatchInsertBefore:
		return "InsertBefore"
	case PatchReplace:
		return "Replace"
	case PatchRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// Structural reports whether op creates, moves or detaches elements.
func (op PatchOp) Structural() bool {
	switch op {
	case PatchCreateText, PatchCreateElement, PatchAppend, PatchInsertBefore, PatchReplace, PatchRemove:
		return true
	}
	return false
}

// Patch is a single recorded canvas mutation.
//
// Handle is the target (or created) element. Parent is set for Append,
// InsertBefore and Replace. Ref is the sibling for InsertBefore and the old
// child for Replace. Value carries text, style and attribute values.
type Patch struct {
	Op       PatchOp    `json:"op" msgpack:"op"`
	Handle   Handle     `json:"h,omitempty" msgpack:"h,omitempty"`
	Parent   Handle     `json:"p,omitempty" msgpack:"p,omitempty"`
	Ref      Handle     `json:"r,omitempty" msgpack:"r,omitempty"`
	Tag      string     `json:"tag,omitempty" msgpack:"tag,omitempty"`
	Key      string     `json:"k,omitempty" msgpack:"k,omitempty"`
	Value    string     `json:"v,omitempty" msgpack:"v,omitempty"`
	Listener ListenerID `json:"l,omitempty" msgpack:"l,omitempty"`
}
