package live

import "github.com/vango-dev/retain/pkg/canvas"

// Frame types.
const (
	// Server to client.
	FrameInit  = "init"  // Root handle plus the patches that build the first tree
	FramePatch = "patch" // Patches produced by one event
	FrameError = "error" // Code and Message describe a rejected frame
	FramePong  = "pong"

	// Client to server.
	FrameClick = "click" // Handle is the clicked element
	FramePing  = "ping"
)

// Frame is one message on the wire.
type Frame struct {
	Type    string         `json:"type" msgpack:"type"`
	Seq     uint64         `json:"seq,omitempty" msgpack:"seq,omitempty"`
	Root    canvas.Handle  `json:"root,omitempty" msgpack:"root,omitempty"`
	Handle  canvas.Handle  `json:"handle,omitempty" msgpack:"handle,omitempty"`
	Patches []canvas.Patch `json:"patches,omitempty" msgpack:"patches,omitempty"`
	Code    string         `json:"code,omitempty" msgpack:"code,omitempty"`
	Message string         `json:"message,omitempty" msgpack:"message,omitempty"`
}
