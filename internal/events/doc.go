// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

/*
Package events publishes committed catalog changes to NATS.

Each change is sent as a JSON document on the subject
<prefix>.<entity>.<action>, for example catalog.movie.created. Messages carry
a Nats-Msg-Id header so JetStream consumers downstream can deduplicate, and
the originating X-Request-ID when one is known.

Publishing is best effort. A failed publish never fails the HTTP request that
caused it; the error is logged and counted. A circuit breaker (sony/gobreaker)
stops publish attempts while the broker is unreachable.

Usage:

	pub, err := events.NewNATSPublisher(&cfg.Events)
	if err != nil {
		return err
	}
	svc := catalog.NewService(db, catalog.Notifiers(hub, pub), cfg.API.MaxPageSize)
	tree.AddMessagingService(services.NewNATSPublisherService(pub))
*/
package events
