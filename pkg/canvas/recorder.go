package canvas

// Recorder is a Canvas that forwards every call to an inner Canvas and
// records one Patch per mutation. The live server ships the recorded
// patches to the browser; tests use them to count mutations.
type Recorder struct {
	inner   Canvas
	patches []Patch
}

// NewRecorder wraps inner.
func NewRecorder(inner Canvas) *Recorder {
	return &Recorder{inner: inner}
}

// Inner returns the wrapped canvas.
func (r *Recorder) Inner() Canvas {
	return r.inner
}

// Patches returns the patches recorded since the last Drain or Reset.
func (r *Recorder) Patches() []Patch {
	return r.patches
}

// Drain returns the recorded patches and clears the log.
func (r *Recorder) Drain() []Patch {
	out := r.patches
	r.patches = nil
	return out
}

// Reset clears the log.
func (r *Recorder) Reset() {
	r.patches = nil
}

// Count returns the number of recorded patches with any of the given ops.
func (r *Recorder) Count(ops ...PatchOp) int {
	n := 0
	for _, p := range r.patches {
		for _, op := range ops {
			if p.Op == op {
				n++
				break
			}
		}
	}
	return n
}

// Structural returns the number of recorded structural patches.
func (r *Recorder) Structural() int {
	n := 0
	for _, p := range r.patches {
		if p.Op.Structural() {
			n++
		}
	}
	return n
}

func (r *Recorder) record(p Patch) {
	r.patches = append(r.patches, p)
}

// Root implements Canvas.
func (r *Recorder) Root() Handle {
	return r.inner.Root()
}

// CreateText implements Canvas.
func (r *Recorder) CreateText(value string) Handle {
	h := r.inner.CreateText(value)
	r.record(Patch{Op: PatchCreateText, Handle: h, Value: value})
	return h
}

// CreateElement implements Canvas.
func (r *Recorder) CreateElement(tag string) Handle {
	h := r.inner.CreateElement(tag)
	r.record(Patch{Op: PatchCreateElement, Handle: h, Tag: tag})
	return h
}

// SetStyle implements Canvas.
func (r *Recorder) SetStyle(h Handle, key, value string) {
	r.inner.SetStyle(h, key, value)
	r.record(Patch{Op: PatchSetStyle, Handle: h, Key: key, Value: value})
}

// SetAttribute implements Canvas.
func (r *Recorder) SetAttribute(h Handle, key, value string) {
	r.inner.SetAttribute(h, key, value)
	r.record(Patch{Op: PatchSetAttr, Handle: h, Key: key, Value: value})
}

// AddClickListener implements Canvas.
func (r *Recorder) AddClickListener(h Handle, fn func()) ListenerID {
	id := r.inner.AddClickListener(h, fn)
	r.record(Patch{Op: PatchListen, Handle: h, Listener: id})
	return id
}

// RemoveClickListener implements Canvas.
func (r *Recorder) RemoveClickListener(h Handle, id ListenerID) {
	r.inner.RemoveClickListener(h, id)
	r.record(Patch{Op: PatchUnlisten, Handle: h, Listener: id})
}

// AppendChild implements Canvas.
func (r *Recorder) AppendChild(parent, child Handle) {
	r.inner.AppendChild(parent, child)
	r.record(Patch{Op: PatchAppend, Handle: child, Parent: parent})
}

// InsertBefore implements Canvas.
func (r *Recorder) InsertBefore(parent, child, ref Handle) {
	r.inner.InsertBefore(parent, child, ref)
	r.record(Patch{Op: PatchInsertBefore, Handle: child, Parent: parent, Ref: ref})
}

// ReplaceChild implements Canvas.
func (r *Recorder) ReplaceChild(parent, newChild, oldChild Handle) {
	r.inner.ReplaceChild(parent, newChild, oldChild)
	r.record(Patch{Op: PatchReplace, Handle: newChild, Parent: parent, Ref: oldChild})
}

// Remove implements Canvas.
func (r *Recorder) Remove(h Handle) {
	r.inner.Remove(h)
	r.record(Patch{Op: PatchRemove, Handle: h})
}
