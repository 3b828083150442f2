package live

// indexHTML is the bundled browser client. It keeps a map from canvas
// handles to DOM nodes, applies patch frames in order, and reports clicks
// on elements that carry server-side listeners. Removed and replaced
// subtrees leave the map.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="app"></div>
<script>
(function () {
  "use strict";
  var OP = {CREATE_TEXT: 1, CREATE_ELEMENT: 2, SET_STYLE: 3, SET_ATTR: 4, LISTEN: 5,
            UNLISTEN: 6, APPEND: 7, INSERT_BEFORE: 8, REPLACE: 9, REMOVE: 10};
  var nodes = new Map();
  var listeners = new Map();
  var app = document.getElementById("app");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws?codec=json");

  function forget(n) {
    for (var c = n.firstChild; c; c = c.nextSibling) { forget(c); }
    if (n.__handle) {
      nodes.delete(n.__handle);
      listeners.delete(n.__handle);
    }
  }

  function apply(p) {
    var n = nodes.get(p.h);
    switch (p.op) {
    case OP.CREATE_TEXT:
      var txt = document.createTextNode(p.v || "");
      txt.__handle = p.h;
      nodes.set(p.h, txt);
      break;
    case OP.CREATE_ELEMENT:
      var el = document.createElement(p.tag);
      el.__handle = p.h;
      nodes.set(p.h, el);
      break;
    case OP.SET_STYLE:
      if (p.v) { n.style.setProperty(p.k, p.v); } else { n.style.removeProperty(p.k); }
      break;
    case OP.SET_ATTR:
      if (p.v) { n.setAttribute(p.k, p.v); } else { n.removeAttribute(p.k); }
      break;
    case OP.LISTEN:
      listeners.set(p.h, (listeners.get(p.h) || 0) + 1);
      break;
    case OP.UNLISTEN:
      listeners.set(p.h, Math.max(0, (listeners.get(p.h) || 0) - 1));
      break;
    case OP.APPEND:
      nodes.get(p.p).appendChild(n);
      break;
    case OP.INSERT_BEFORE:
      nodes.get(p.p).insertBefore(n, nodes.get(p.r) || null);
      break;
    case OP.REPLACE:
      var old = nodes.get(p.r);
      if (old && old.parentNode) { old.parentNode.replaceChild(n, old); } else { nodes.get(p.p).appendChild(n); }
      if (old) { forget(old); }
      break;
    case OP.REMOVE:
      if (!n) { break; }
      if (n.parentNode) { n.parentNode.removeChild(n); }
      forget(n);
      break;
    }
  }

  ws.onmessage = function (ev) {
    var f = JSON.parse(ev.data);
    if (f.type === "init") {
      nodes.clear();
      listeners.clear();
      app.textContent = "";
      nodes.set(f.root, app);
    }
    if (f.type === "error") {
      console.warn("retain:", f.code, f.message);
      return;
    }
    (f.patches || []).forEach(apply);
  };

  app.addEventListener("click", function (ev) {
    for (var t = ev.target; t && t !== app; t = t.parentNode) {
      if (t.__handle && listeners.get(t.__handle) > 0) {
        ws.send(JSON.stringify({type: "click", handle: t.__handle}));
        return;
      }
    }
  });
})();
</script>
</body>
</html>
`
