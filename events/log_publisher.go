package events

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// LogPublisher is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, msg Message) error {
	utils.InfoLogger.WithFields(logrus.Fields{
		"event":     msg.Event,
		"aggregate": msg.Aggregate,
		"record_id": msg.RecordID,
	}).Info(string(msg.Data))
	return nil
}

func (LogPublisher) Close() error { return nil }
