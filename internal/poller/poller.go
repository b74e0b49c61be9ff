package poller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emalab/ema8314/internal/config"
	"github.com/emalab/ema8314/internal/device"
	"github.com/emalab/ema8314/internal/logging"
	"github.com/emalab/ema8314/internal/protocol"
)

// Poller periodically reads the configured channels and appends one
// timestamped, separator-delimited line per tick to its writer. On any
// exchange failure it enters the probe-and-retry idiom and resumes once the
// device answers again.
type Poller struct {
	client *device.Client
	cfg    *config.Config
	out    io.Writer

	now func() time.Time // test hook
}

// New builds a poller writing lines to out.
func New(client *device.Client, cfg *config.Config, out io.Writer) *Poller {
	return &Poller{
		client: client,
		cfg:    cfg,
		out:    out,
		now:    time.Now,
	}
}

// Run polls until ctx is cancelled. A failed tick is logged, recovered via
// WaitForDevice, and never terminates the loop; the only exits are context
// cancellation and write failures on the log sink.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval.Std())
	defer ticker.Stop()

	for {
		line, err := p.buildLine()
		if err != nil {
			logging.Warn("poll failed, probing device", zap.Error(err))
			if werr := p.client.WaitForDevice(ctx); werr != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Error("device probe gave up", zap.Error(werr))
			}
		} else if err := p.writeLine(line); err != nil {
			return fmt.Errorf("write log line: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// writeLine stamps and appends one line.
func (p *Poller) writeLine(line string) error {
	stamp := p.now().Format(time.RFC3339)
	_, err := fmt.Fprintf(p.out, "%s%s\n", stamp, line)
	return err
}

// buildLine reads everything the column config asks for and formats one
// log line (without timestamp). Broken sensors log their temperature as
// NaN rather than a stale number.
func (p *Poller) buildLine() (string, error) {
	cols := p.cfg.Columns
	sep := p.cfg.Separator

	broken, err := p.client.SensorStatus()
	if err != nil {
		return "", err
	}

	var outputs [protocol.NumChannels]bool
	if cols.Output.Any() {
		outputs, err = p.client.Outputs()
		if err != nil {
			return "", err
		}
	}

	var b strings.Builder
	for ch := 0; ch < protocol.NumChannels; ch++ {
		if cols.Temperature.Enabled(ch) {
			b.WriteString(sep)
			if broken[ch] {
				b.WriteString("NaN")
			} else {
				m, err := p.client.Temperature(protocol.Channel(ch))
				if err != nil {
					return "", err
				}
				b.WriteString(fmt.Sprintf("%g", m.Value))
			}
		}

		if cols.Sensor.Enabled(ch) {
			b.WriteString(sep)
			if broken[ch] {
				b.WriteString("disconnected")
			} else {
				b.WriteString("connected")
			}
		}

		if cols.Output.Enabled(ch) {
			b.WriteString(sep)
			if outputs[ch] {
				b.WriteString("on")
			} else {
				b.WriteString("off")
			}
		}
	}
	return b.String(), nil
}
