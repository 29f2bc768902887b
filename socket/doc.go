// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package socket provides the typed async wrappers over the engine's socket
// patterns: PUB/SUB, XPUB/XSUB, REQ/REP, PUSH/PULL, DEALER/ROUTER and PAIR.
// A Builder configures a raw socket (high-water marks, CURVE material, ZAP
// domain, subscriptions) and attaches it with Bind or Connect, after which
// the socket lives on its context's reactor and is used only through the
// returned wrapper.
package socket
