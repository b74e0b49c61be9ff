package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/emalab/ema8314/internal/device"
	"github.com/emalab/ema8314/internal/protocol"
	"github.com/emalab/ema8314/internal/session"
	"github.com/emalab/ema8314/internal/tui"
)

// Connection flags, persistent on root
var (
	deviceAddr string
	listenAddr string
	password   string
	timeout    time.Duration
)

// Subcommand flags
var (
	watchInterval time.Duration
	limitUnit     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceAddr, "device", "192.168.1.100:6936", "Module UDP address (ip:port)")
	rootCmd.PersistentFlags().StringVar(&listenAddr, "listen", "0.0.0.0:17120", "Local UDP address to bind")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Device password (factory default when empty)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "Reply timeout per request")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tempCmd)
	rootCmd.AddCommand(fwCmd)
	rootCmd.AddCommand(rebootCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(limitsCmd)
	rootCmd.AddCommand(outputsCmd)
	rootCmd.AddCommand(outputModeCmd)
	rootCmd.AddCommand(controlCmd)
	rootCmd.AddCommand(wdtCmd)
	rootCmd.AddCommand(sensorCmd)
	rootCmd.AddCommand(netCmd)
}

// withClient opens a session with the connection flags, runs fn, and closes.
func withClient(fn func(*device.Client) error) error {
	s, err := session.Open(listenAddr, deviceAddr, password)
	if err != nil {
		return err
	}
	s.SetTimeout(timeout)

	c := device.NewClient(s)
	defer c.Close()
	return fn(c)
}

// parseChannel reads a channel number argument (0-3).
func parseChannel(arg string) (protocol.Channel, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || !protocol.Channel(n).Valid() {
		return 0, fmt.Errorf("invalid channel %q (expected 0-%d)", arg, protocol.NumChannels-1)
	}
	return protocol.Channel(n), nil
}

// parseChannelSet reads a comma separated channel list, or "all".
func parseChannelSet(arg string) ([protocol.NumChannels]bool, error) {
	var set [protocol.NumChannels]bool
	if arg == "all" {
		for i := range set {
			set[i] = true
		}
		return set, nil
	}
	if arg == "none" {
		return set, nil
	}
	for _, part := range strings.Split(arg, ",") {
		ch, err := parseChannel(strings.TrimSpace(part))
		if err != nil {
			return set, err
		}
		set[ch] = true
	}
	return set, nil
}

func parseUnitName(s string) (protocol.Unit, error) {
	switch strings.ToLower(s) {
	case "c", "celsius":
		return protocol.Celsius, nil
	case "f", "fahrenheit":
		return protocol.Fahrenheit, nil
	}
	return 0, fmt.Errorf("invalid unit %q (expected C or F)", s)
}

func parseModeName(s string) (protocol.ControlMode, error) {
	switch strings.ToLower(s) {
	case "above-high-on", "0":
		return protocol.AboveHighOn, nil
	case "above-high-off", "1":
		return protocol.AboveHighOff, nil
	case "within-range-on", "2":
		return protocol.WithinRangeOn, nil
	case "within-range-off", "3":
		return protocol.WithinRangeOff, nil
	}
	return 0, fmt.Errorf("invalid control mode %q", s)
}

func parseSensorName(s string) (protocol.SensorType, error) {
	switch strings.ToLower(s) {
	case "pt1000":
		return protocol.Pt1000, nil
	case "pt100":
		return protocol.Pt100, nil
	}
	return 0, fmt.Errorf("invalid sensor type %q (expected pt100 or pt1000)", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// statusCmd dumps the whole module state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the full module state",
	Long: `Read and display everything the module reports: firmware version,
per-channel temperature, sensor health, relay state, and whether limit
control is running.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			fw, err := c.FirmwareVersion()
			if err != nil {
				return err
			}
			broken, err := c.SensorStatus()
			if err != nil {
				return err
			}
			temps, err := c.AllTemperatures()
			if err != nil {
				return err
			}
			outputs, err := c.Outputs()
			if err != nil {
				return err
			}
			control, err := c.ControlEnabled()
			if err != nil {
				return err
			}

			fmt.Printf("Device:   %s (firmware %s)\n", deviceAddr, fw)
			fmt.Printf("Control:  %s\n\n", map[bool]string{true: "enabled", false: "disabled"}[control])
			fmt.Printf("%-4s %-12s %-14s %-7s\n", "CH", "TEMP", "SENSOR", "OUTPUT")
			for ch := 0; ch < protocol.NumChannels; ch++ {
				temp := temps[ch].String()
				sensor := "connected"
				if broken[ch] {
					temp = "---"
					sensor = "disconnected"
				}
				fmt.Printf("%-4d %-12s %-14s %-7s\n", ch, temp, sensor, onOff(outputs[ch]))
			}
			return nil
		})
	},
}

// tempCmd reads one channel or all four
var tempCmd = &cobra.Command{
	Use:   "temp [channel]",
	Short: "Read temperature",
	Example: `  # All four channels
  ema-ctl temp

  # Channel 2 only
  ema-ctl temp 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			if len(args) == 1 {
				ch, err := parseChannel(args[0])
				if err != nil {
					return err
				}
				m, err := c.Temperature(ch)
				if err != nil {
					return err
				}
				fmt.Println(m)
				return nil
			}

			temps, err := c.AllTemperatures()
			if err != nil {
				return err
			}
			for ch, m := range temps {
				fmt.Printf("%d: %s\n", ch, m)
			}
			return nil
		})
	},
}

var fwCmd = &cobra.Command{
	Use:   "fw",
	Short: "Read the firmware version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			fw, err := c.FirmwareVersion()
			if err != nil {
				return err
			}
			fmt.Println(fw)
			return nil
		})
	},
}

var rebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Reboot the module",
	Long: `Reboot the module. The device acknowledges before restarting and is
unreachable for a few seconds afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			if err := c.Reboot(); err != nil {
				return err
			}
			fmt.Println("Reboot requested.")
			return nil
		})
	},
}

// watchCmd opens the live dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live full-screen channel dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			model := tui.NewWatchModel(c, deviceAddr, watchInterval)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err := p.Run()
			return err
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "Refresh interval")
}

// limitsCmd gets and sets the temperature thresholds for limit control
var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Read or set control temperature limits",
}

var limitsGetCmd = &cobra.Command{
	Use:   "get [channel]",
	Short: "Read limit thresholds",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			if len(args) == 1 {
				ch, err := parseChannel(args[0])
				if err != nil {
					return err
				}
				l, err := c.Limits(ch)
				if err != nil {
					return err
				}
				fmt.Printf("low %g %s, high %g %s\n", l.Low, l.Unit, l.High, l.Unit)
				return nil
			}

			all, err := c.AllLimits()
			if err != nil {
				return err
			}
			for ch, l := range all {
				fmt.Printf("%d: low %g %s, high %g %s\n", ch, l.Low, l.Unit, l.High, l.Unit)
			}
			return nil
		})
	},
}

var limitsSetCmd = &cobra.Command{
	Use:   "set <channel> <low> <high>",
	Short: "Set limit thresholds for one channel",
	Example: `  # Turn-on below 18, turn-off above 25 (mode dependent)
  ema-ctl limits set 0 18.0 25.0

  # Fahrenheit thresholds
  ema-ctl limits set 0 64.4 77.0 --unit F`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, err := parseChannel(args[0])
		if err != nil {
			return err
		}
		low, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("invalid low limit %q", args[1])
		}
		high, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			return fmt.Errorf("invalid high limit %q", args[2])
		}
		if low >= high {
			return fmt.Errorf("low limit %g must be below high limit %g", low, high)
		}
		unit, err := parseUnitName(limitUnit)
		if err != nil {
			return err
		}

		return withClient(func(c *device.Client) error {
			return c.SetLimits(ch, device.Limits{
				Low:  float32(low),
				High: float32(high),
				Unit: unit,
			})
		})
	},
}

func init() {
	limitsSetCmd.Flags().StringVar(&limitUnit, "unit", "C", "Temperature unit (C or F)")
	limitsCmd.AddCommand(limitsGetCmd)
	limitsCmd.AddCommand(limitsSetCmd)
}

// outputsCmd reads and drives the relay outputs
var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "Read or drive the relay outputs",
}

var outputsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Read relay states",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			on, err := c.Outputs()
			if err != nil {
				return err
			}
			for ch, v := range on {
				fmt.Printf("%d: %s\n", ch, onOff(v))
			}
			return nil
		})
	},
}

var outputsSetCmd = &cobra.Command{
	Use:   "set <channels> <on|off>",
	Short: "Drive relays on manually controlled channels",
	Long: `Switch the listed relays. Channels are a comma separated list, or
"all". Other channels keep their current state; channels under automatic
limit control ignore manual writes.`,
	Example: `  # Channels 0 and 2 on
  ema-ctl outputs set 0,2 on

  # Everything off
  ema-ctl outputs set all off`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := parseChannelSet(args[0])
		if err != nil {
			return err
		}
		var want bool
		switch args[1] {
		case "on":
			want = true
		case "off":
			want = false
		default:
			return fmt.Errorf("invalid state %q (expected on or off)", args[1])
		}

		return withClient(func(c *device.Client) error {
			// The wire command writes all four relays at once, so fold the
			// request into the current state.
			on, err := c.Outputs()
			if err != nil {
				return err
			}
			for ch := range on {
				if set[ch] {
					on[ch] = want
				}
			}
			return c.SetOutputs(on)
		})
	},
}

func init() {
	outputsCmd.AddCommand(outputsGetCmd)
	outputsCmd.AddCommand(outputsSetCmd)
}

// outputModeCmd selects manual vs automatic control per channel
var outputModeCmd = &cobra.Command{
	Use:   "output-mode",
	Short: "Read or set per-channel output control mode",
	Long: `Each channel's relay is driven either manually (outputs set) or
automatically by the limit controller. This command reads or rewrites the
manual/auto split for all four channels at once.`,
}

var outputModeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show which channels are under automatic control",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			auto, err := c.OutputModes()
			if err != nil {
				return err
			}
			for ch, v := range auto {
				mode := "manual"
				if v {
					mode = "auto"
				}
				fmt.Printf("%d: %s\n", ch, mode)
			}
			return nil
		})
	},
}

var outputModeSetCmd = &cobra.Command{
	Use:   "set <channels>",
	Short: "Put the listed channels under automatic control, the rest manual",
	Example: `  # Channels 0 and 1 automatic, 2 and 3 manual
  ema-ctl output-mode set 0,1

  # Everything manual
  ema-ctl output-mode set none`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		auto, err := parseChannelSet(args[0])
		if err != nil {
			return err
		}
		return withClient(func(c *device.Client) error {
			return c.SetOutputModes(auto)
		})
	},
}

func init() {
	outputModeCmd.AddCommand(outputModeGetCmd)
	outputModeCmd.AddCommand(outputModeSetCmd)
}

// controlCmd manages the limit controller
var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Manage the on-device limit controller",
}

var controlStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show controller state and channel mask",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			enabled, err := c.ControlEnabled()
			if err != nil {
				return err
			}
			mask, err := c.ControlMask()
			if err != nil {
				return err
			}
			fmt.Printf("controller: %s\n", map[bool]string{true: "enabled", false: "disabled"}[enabled])
			for ch, v := range mask {
				state := "controlled"
				if !v {
					state = "excluded"
				}
				fmt.Printf("%d: %s\n", ch, state)
			}
			return nil
		})
	},
}

var controlEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start limit control",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient((*device.Client).EnableControl)
	},
}

var controlDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop limit control",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient((*device.Client).DisableControl)
	},
}

var controlMaskCmd = &cobra.Command{
	Use:   "mask <channels>",
	Short: "Select which channels the controller drives",
	Example: `  # Control channels 0 and 3 only
  ema-ctl control mask 0,3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mask, err := parseChannelSet(args[0])
		if err != nil {
			return err
		}
		return withClient(func(c *device.Client) error {
			return c.SetControlMask(mask)
		})
	},
}

var controlModeCmd = &cobra.Command{
	Use:   "mode <channel> [mode]",
	Short: "Read or set a channel's control mode",
	Long: `Without a mode argument, read the channel's current control mode.
With one, set it. Modes:

  above-high-on   (0)  output on above high limit, off below low
  above-high-off  (1)  output off above high limit, on below low
  within-range-on (2)  output on between the limits, off outside
  within-range-off(3)  output off between the limits, on outside`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, err := parseChannel(args[0])
		if err != nil {
			return err
		}

		if len(args) == 1 {
			return withClient(func(c *device.Client) error {
				mode, err := c.ControlMode(ch)
				if err != nil {
					return err
				}
				fmt.Println(mode)
				return nil
			})
		}

		mode, err := parseModeName(args[1])
		if err != nil {
			return err
		}
		return withClient(func(c *device.Client) error {
			return c.SetControlMode(ch, mode)
		})
	},
}

func init() {
	controlCmd.AddCommand(controlStatusCmd)
	controlCmd.AddCommand(controlEnableCmd)
	controlCmd.AddCommand(controlDisableCmd)
	controlCmd.AddCommand(controlMaskCmd)
	controlCmd.AddCommand(controlModeCmd)
}

// wdtCmd manages the communication watchdog
var wdtCmd = &cobra.Command{
	Use:   "wdt",
	Short: "Manage the communication watchdog",
	Long: `The watchdog drives selected relays to a safe state when the module
stops hearing from the host for the configured wait time.`,
}

var wdtShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show watchdog configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			w, err := c.Watchdog()
			if err != nil {
				return err
			}
			fmt.Printf("state:   %s\n", map[bool]string{true: "enabled", false: "disabled"}[w.Enabled])
			fmt.Printf("wait:    %s\n", w.Wait())
			var driven []string
			for ch, v := range w.Outputs {
				if v {
					driven = append(driven, strconv.Itoa(ch))
				}
			}
			if len(driven) == 0 {
				fmt.Println("outputs: none")
			} else {
				fmt.Printf("outputs: %s\n", strings.Join(driven, ","))
			}
			return nil
		})
	},
}

var wdtEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Arm the watchdog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient((*device.Client).EnableWatchdog)
	},
}

var wdtDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disarm the watchdog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient((*device.Client).DisableWatchdog)
	},
}

var wdtSetCmd = &cobra.Command{
	Use:   "set <wait> <channels>",
	Short: "Configure wait time and driven outputs",
	Long: `Set the watchdog wait time (a duration between 1s and 1000s,
rounded to 0.1 s) and the relays it drives on expiry.`,
	Example: `  # Drive channels 0 and 1 after 30 seconds of silence
  ema-ctl wdt set 30s 0,1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wait, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("invalid wait time %q: %w", args[0], err)
		}
		outputs, err := parseChannelSet(args[1])
		if err != nil {
			return err
		}
		tenths := wait.Round(100*time.Millisecond) / (100 * time.Millisecond)

		return withClient(func(c *device.Client) error {
			return c.ConfigureWatchdog(int16(tenths), outputs)
		})
	},
}

func init() {
	wdtCmd.AddCommand(wdtShowCmd)
	wdtCmd.AddCommand(wdtEnableCmd)
	wdtCmd.AddCommand(wdtDisableCmd)
	wdtCmd.AddCommand(wdtSetCmd)
}

// sensorCmd reads and sets the probe type per channel
var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Read or set the probe type (Pt100 / Pt1000)",
}

var sensorGetCmd = &cobra.Command{
	Use:   "get [channel]",
	Short: "Read probe type",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			if len(args) == 1 {
				ch, err := parseChannel(args[0])
				if err != nil {
					return err
				}
				st, err := c.SensorType(ch)
				if err != nil {
					return err
				}
				fmt.Println(st)
				return nil
			}

			types, err := c.AllSensorTypes()
			if err != nil {
				return err
			}
			for ch, st := range types {
				fmt.Printf("%d: %s\n", ch, st)
			}
			return nil
		})
	},
}

var sensorSetCmd = &cobra.Command{
	Use:   "set <channel|all> <pt100|pt1000>",
	Short: "Set probe type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := parseSensorName(args[1])
		if err != nil {
			return err
		}

		if args[0] == "all" {
			return withClient(func(c *device.Client) error {
				var types [protocol.NumChannels]protocol.SensorType
				for i := range types {
					types[i] = st
				}
				return c.SetAllSensorTypes(types)
			})
		}

		ch, err := parseChannel(args[0])
		if err != nil {
			return err
		}
		return withClient(func(c *device.Client) error {
			return c.SetSensorType(ch, st)
		})
	},
}

func init() {
	sensorCmd.AddCommand(sensorGetCmd)
	sensorCmd.AddCommand(sensorSetCmd)
}

// netCmd changes the module's network identity
var netCmd = &cobra.Command{
	Use:   "net",
	Short: "Change the module's network settings",
}

var netSetPortCmd = &cobra.Command{
	Use:   "set-port <port>",
	Short: "Change the module's UDP port",
	Long: `Change the UDP port the module listens on. The change applies
immediately and later requests in this process follow it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil || port == 0 {
			return fmt.Errorf("invalid port %q", args[0])
		}
		return withClient(func(c *device.Client) error {
			if err := c.ChangePort(uint16(port)); err != nil {
				return err
			}
			fmt.Printf("Module now listening on port %d.\n", port)
			return nil
		})
	},
}

var netSetIPCmd = &cobra.Command{
	Use:   "set-ip <address>",
	Short: "Change the module's IP address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ip := net.ParseIP(args[0])
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("invalid IPv4 address %q", args[0])
		}
		return withClient(func(c *device.Client) error {
			if err := c.ChangeIP(ip); err != nil {
				return err
			}
			fmt.Printf("Module now at %s.\n", ip)
			return nil
		})
	},
}

var netSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Change the device password",
	Long: `Change the device password (up to 8 characters). Prompts twice on
the terminal; the password is not echoed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		newPassword, err := promptNewPassword()
		if err != nil {
			return err
		}
		return withClient(func(c *device.Client) error {
			if err := c.ChangePassword(newPassword); err != nil {
				return err
			}
			fmt.Println("Password changed.")
			return nil
		})
	},
}

var netResetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset the device password to the factory default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *device.Client) error {
			if err := c.ResetPassword(); err != nil {
				return err
			}
			fmt.Println("Password reset to factory default.")
			return nil
		})
	},
}

func promptNewPassword() (string, error) {
	fmt.Print("New password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(first), nil
}

func init() {
	netCmd.AddCommand(netSetPortCmd)
	netCmd.AddCommand(netSetIPCmd)
	netCmd.AddCommand(netSetPasswordCmd)
	netCmd.AddCommand(netResetPasswordCmd)
}
