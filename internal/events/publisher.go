// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinecatalog/internal/catalog"
	"github.com/tomtom215/cinecatalog/internal/config"
	"github.com/tomtom215/cinecatalog/internal/logging"
	"github.com/tomtom215/cinecatalog/internal/metrics"
)

// Header names set on every published change.
const (
	HeaderMsgID     = "Nats-Msg-Id"
	HeaderRequestID = "X-Request-ID"
)

// NATSPublisher publishes catalog changes to NATS core subjects of the form
// <prefix>.<entity>.<action>. Publishing sits behind a circuit breaker so a
// dead broker costs one fast rejection per change instead of a timeout.
//
// DETERMINISM NOTE: The circuit breaker uses real time for its interval and
// timeout. Tests exercise the breaker through Settings overrides.
type NATSPublisher struct {
	nc      *nats.Conn
	cb      *gobreaker.CircuitBreaker[struct{}]
	prefix  string
	timeout time.Duration
}

// NewNATSPublisher connects to cfg.NATSURL. The connection retries in the
// background, so a broker that starts later is picked up without a restart.
func NewNATSPublisher(cfg *config.EventsConfig) (*NATSPublisher, error) {
	return newNATSPublisher(cfg, defaultBreakerSettings)
}

func newNATSPublisher(cfg *config.EventsConfig, settings func(name string) gobreaker.Settings) (*NATSPublisher, error) {
	nc, err := nats.Connect(cfg.NATSURL,
		nats.Name("cinecatalog"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logging.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logging.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	name := "nats-publisher"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	return &NATSPublisher{
		nc:      nc,
		cb:      gobreaker.NewCircuitBreaker[struct{}](settings(name)),
		prefix:  cfg.SubjectPrefix,
		timeout: cfg.PublishTimeout,
	}, nil
}

// defaultBreakerSettings opens after 5 consecutive failures and probes again
// after 30 seconds.
func defaultBreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= 5
			if shouldTrip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: onStateChange,
	}
}

func onStateChange(name string, from, to gobreaker.State) {
	logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
	metrics.RecordCircuitBreakerTransition(name, from.String(), to.String(), stateToFloat(to))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Subject returns the subject a change is published on.
func (p *NATSPublisher) Subject(change catalog.Change) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, change.Entity, change.Action)
}

// Publish sends one change and waits up to the configured timeout for the
// server to acknowledge the flush.
func (p *NATSPublisher) Publish(ctx context.Context, change catalog.Change) error {
	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	msg := nats.NewMsg(p.Subject(change))
	msg.Data = data
	msg.Header.Set(HeaderMsgID, uuid.NewString())
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		msg.Header.Set(HeaderRequestID, requestID)
	}

	_, err = p.cb.Execute(func() (struct{}, error) {
		if err := p.nc.PublishMsg(msg); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, p.nc.FlushTimeout(p.timeout)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordEventPublish("rejected")
		} else {
			metrics.RecordEventPublish("failure")
		}
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}

	metrics.RecordEventPublish("success")
	return nil
}

// Notify implements catalog.Notifier. Failures are logged, never returned.
func (p *NATSPublisher) Notify(ctx context.Context, change catalog.Change) {
	if err := p.Publish(ctx, change); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("entity", change.Entity).
			Str("action", change.Action).
			Int64("entity_id", change.ID).
			Msg("Failed to publish catalog change")
	}
}

// Connected reports whether the NATS connection is currently up.
func (p *NATSPublisher) Connected() bool {
	return p.nc.IsConnected()
}

// Close drains pending publishes and closes the connection. It is safe to
// call more than once.
func (p *NATSPublisher) Close() {
	if p.nc.IsClosed() {
		return
	}
	if err := p.nc.Drain(); err != nil {
		logging.Warn().Err(err).Msg("NATS drain failed")
		p.nc.Close()
	}
}
