// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package services

import (
	"context"

	"github.com/tomtom215/cinecatalog/internal/logging"
)

// Closer is satisfied by *events.NATSPublisher.
type Closer interface {
	Close()
}

// NATSPublisherService ties the publisher connection to the supervisor
// lifecycle. The connection reconnects on its own; this service only drains
// it once the tree shuts down. Changes notified after the drain are logged
// and dropped by the publisher.
type NATSPublisherService struct {
	publisher Closer
	name      string
}

// NewNATSPublisherService creates a new publisher lifecycle wrapper.
func NewNATSPublisherService(publisher Closer) *NATSPublisherService {
	return &NATSPublisherService{
		publisher: publisher,
		name:      "nats-publisher",
	}
}

// Serve implements suture.Service.
func (s *NATSPublisherService) Serve(ctx context.Context) error {
	<-ctx.Done()

	logging.Info().Msg("Draining NATS publisher")
	s.publisher.Close()

	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (s *NATSPublisherService) String() string {
	return s.name
}
