// Package live serves retain trees to browsers over websockets.
//
// Each connection gets its own Renderer mounted on a server-side
// canvas.Document. Every canvas mutation is captured by a canvas.Recorder
// and sent to the browser as a patch frame; the bundled client applies the
// patches to the real DOM and reports clicks back. State therefore lives
// entirely on the server, one tree per session.
//
// # Wire Format
//
// Frames are JSON text messages or msgpack binary messages, chosen per
// connection with the codec query parameter of /ws:
//
//	{"type":"init","seq":1,"root":1,"patches":[{"op":2,"h":2,"tag":"div"}, ...]}
//	{"type":"click","handle":7}
//	{"type":"patch","seq":2,"patches":[...]}
//	{"type":"error","code":"E302","message":"frame type \"hover\""}
//
// # Usage
//
//	s, err := live.New(live.Config{
//	    Root:    func() *vdom.Node { return vdom.C(App) },
//	    Metrics: true,
//	})
//	if err != nil {
//	    return err
//	}
//	return s.Run(ctx)
package live
