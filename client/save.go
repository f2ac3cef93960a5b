package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/lamplight/datain"
	"github.com/five82/lamplight/record"
)

// Save submits rec and interprets the response. A failed submission is
// reported through the collection, not as an error.
func (c *Client) Save(ctx context.Context, rec record.Mutable) (*datain.ResponseCollection, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if !rec.Editable() {
		return nil, record.ErrNotEditable
	}
	rec.BeforeSave()
	form, err := rec.Submission()
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", rec.Type(), err)
	}
	rc, env, err := c.send(ctx, Request{Action: rec.Action(), Method: rec.Method(), Post: true, Params: form})
	if err != nil {
		return nil, err
	}
	out, err := c.datain.Build(rc, env)
	if err != nil {
		return nil, fmt.Errorf("build datain response: %w", err)
	}
	if !out.Success() {
		c.logger.Info("lamplight submission failed",
			zap.String("record", rec.Type()),
			zapCode(out.ErrorCode()), zapMessage(out.ErrorMessage()))
	}
	return out, nil
}

// AttendWork adds attendee to the work record workID. attendee is a profile
// id or an identifier the server resolves, such as an email address.
func (c *Client) AttendWork(ctx context.Context, workID int, attendee string) (*datain.ResponseCollection, error) {
	w := record.NewWork(nil)
	w.SetID(workID)
	w.SetAttendee(attendee)
	return c.Save(ctx, w)
}

func zapCode(code int) zap.Field      { return zap.Int("error_code", code) }
func zapMessage(msg string) zap.Field { return zap.String("error_message", msg) }
