package canvas

// Handle identifies an element of a presentation tree. The zero Handle
// refers to nothing.
type Handle uint64

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// ListenerID identifies an attached click listener so it can be removed.
// Go functions are not comparable, so removal goes through this token.
type ListenerID uint64

// Canvas is the live presentation tree the reconciler mutates.
//
// Implementations are not required to be safe for concurrent use. Methods
// given an unknown handle do nothing.
type Canvas interface {
	// Root returns the mount target supplied by the host.
	Root() Handle

	// CreateText creates a detached text element.
	CreateText(value string) Handle

	// CreateElement creates a detached element with the given tag.
	CreateElement(tag string) Handle

	// SetStyle sets one style property. An empty value clears it.
	SetStyle(h Handle, key, value string)

	// SetAttribute sets one attribute. An empty value clears it.
	SetAttribute(h Handle, key, value string)

	// AddClickListener attaches fn as a click listener.
	AddClickListener(h Handle, fn func()) ListenerID

	// RemoveClickListener detaches a listener returned by AddClickListener.
	RemoveClickListener(h Handle, id ListenerID)

	// AppendChild moves child to the end of parent's children.
	AppendChild(parent, child Handle)

	// InsertBefore moves child in front of ref within parent. If ref is not
	// a child of parent the child is appended.
	InsertBefore(parent, child, ref Handle)

	// ReplaceChild puts newChild at oldChild's position and detaches oldChild.
	// oldChild and its descendants are never used again.
	ReplaceChild(parent, newChild, oldChild Handle)

	// Remove detaches h from its parent. h and its descendants are never
	// used again, so an implementation may free them.
	Remove(h Handle)
}
