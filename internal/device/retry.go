package device

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/emalab/ema8314/internal/logging"
	"github.com/emalab/ema8314/internal/protocol"
)

// ProbeInterval is the fixed back-off between reconnect probes. The value
// comes from the vendor's documented workaround for transient receive
// stalls.
const ProbeInterval = 2 * time.Second

// WaitForDevice blocks until the device answers a firmware-version probe,
// retrying on a fixed back-off, or until ctx is cancelled. This is the
// probe-and-retry idiom: callers invoke it after a Timeout or ShortRead
// from a normal exchange, then resume where they left off. Rejections and
// catalog misses are surfaced immediately since waiting cannot fix them.
func (c *Client) WaitForDevice(ctx context.Context) error {
	return c.waitForDevice(ctx, ProbeInterval)
}

func (c *Client) waitForDevice(ctx context.Context, interval time.Duration) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := c.Probe()
		if err == nil {
			if attempt > 1 {
				logging.Info("device answering again", zap.Int("probes", attempt))
			}
			return nil
		}
		if protocol.IsDeviceRejected(err) || protocol.IsUnknownCommand(err) {
			return backoff.Permanent(err)
		}
		logging.Debug("probe failed", zap.Int("attempt", attempt), zap.Error(err))
		return err
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	return backoff.Retry(operation, b)
}
