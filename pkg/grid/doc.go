// Package grid serves browser targets to remote clients: an HTTP API
// launches browsers through a pluggable session factory, and a WebSocket
// proxy bridges each client to its target's DevTools endpoint.
//
// # Factories
//
// A factory is anything implementing SessionLauncher. Load resolves a
// factory identifier through two mechanisms, in order:
//
//  1. a compiled Go plugin path (*.so) exporting a Factory or Default
//     symbol
//  2. the process registry, populated by Register calls at startup
//
// Plugin symbols arrive as pointers to the exported variable, so Validate
// unwraps up to two levels of indirection before checking the capability.
// A resolved candidate that cannot launch sessions is a CapabilityError;
// resolution does not fall through to the next mechanism in that case.
//
// The built-in "local" factory launches headless Chromium on the grid host
// and exposes its DevTools endpoint on an ephemeral loopback port.
//
// # Security
//
// The server refuses to bind to a non-loopback address without an access
// token. Tokens travel as an Authorization bearer header or, for WebSocket
// clients that cannot set headers, an access_token query parameter; both
// are compared in constant time. Browser origins on upgrade requests are
// matched against glob patterns, and requests without an Origin header come
// from non-browser clients and pass.
//
// # Example Usage
//
//	handle, err := grid.Load("local")
//	if err != nil {
//	    return err
//	}
//	server, err := grid.NewServer(grid.Config{
//	    BindAddress: "127.0.0.1:22222",
//	    MaxSessions: 4,
//	}, handle)
//	if err != nil {
//	    return err
//	}
//	return server.Start(ctx)
package grid
