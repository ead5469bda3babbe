// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package websocket streams committed catalog changes to browsers.

A Hub owns the set of connected clients and fans every broadcast out to them.
Each Client runs two goroutines: readPump answers application pings and
detects disconnects, writePump writes queued messages and keepalive pings.

The Hub implements catalog.Notifier, so wiring it into the service is enough
to get a live feed:

	hub := websocket.NewHub()
	svc := catalog.NewService(db, hub, cfg.API.MaxPageSize)
	tree.AddMessagingService(services.NewWebSocketHubService(hub))

Message Format:

	{"type": "catalog_change", "data": {"entity": "movie", "action": "updated", "id": 3, "name": "Heat", "timestamp": "..."}}
	{"type": "pong", "data": null}

Clients that fall 256 messages behind are disconnected rather than allowed to
stall the hub. On shutdown every client receives a close frame.

Thread Safety:

All Hub methods are safe for concurrent use. Client is owned by its two pumps.
*/
package websocket
