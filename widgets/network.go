package widgets

import (
	"fmt"
	"image"
	"net"
	"os"
	"strings"
	"time"

	"github.com/go-ping/ping"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/display"
	"github.com/inkdash/inkdash/utils"
)

// Network shows the device's hostname, local addresses and latency to a
// ping target. Handy on a headless Pi that is mostly reached over SSH.
type Network struct {
	cfg config.NetworkConfig

	hostname string
	addrs    []string
	latency  time.Duration
	online   bool
}

func NewNetwork(cfg config.NetworkConfig) *Network {
	return &Network{cfg: cfg}
}

func (n *Network) Name() string { return "network" }

func (n *Network) Update() error {
	n.hostname, _ = os.Hostname()
	n.addrs = localAddrs()

	n.online = false
	n.latency = 0
	if n.cfg.PingTarget == "" {
		return nil
	}

	pinger, err := ping.NewPinger(n.cfg.PingTarget)
	if err != nil {
		return fmt.Errorf("network: %w", err)
	}
	pinger.Count = 3
	pinger.Timeout = 5 * time.Second
	pinger.SetPrivileged(n.cfg.Privileged)
	if err := pinger.Run(); err != nil {
		utils.Verbose("network: ping %s failed: %v", n.cfg.PingTarget, err)
		return nil
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv > 0 {
		n.online = true
		n.latency = stats.AvgRtt
	}
	return nil
}

// localAddrs returns the non-loopback IPv4 addresses of up interfaces.
func localAddrs() []string {
	var out []string
	ifaces, err := net.Interfaces()
	if err != nil {
		return out
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.To4() == nil {
				continue
			}
			out = append(out, fmt.Sprintf("%s %s", iface.Name, ipNet.IP))
		}
	}
	return out
}

func (n *Network) Render(r *display.Renderer, bounds image.Rectangle) {
	r.Text(bounds.Min.X+4, bounds.Min.Y+display.GlyphHeight, "Network")
	r.HLine(bounds.Min.X+2, bounds.Max.X-3, bounds.Min.Y+display.GlyphHeight+3)

	y := bounds.Min.Y + display.GlyphHeight*2 + 8
	if n.hostname != "" {
		r.Text(bounds.Min.X+4, y, n.hostname)
		y += display.GlyphHeight + 2
	}
	for _, addr := range n.addrs {
		if y > bounds.Max.Y-2 {
			return
		}
		r.Text(bounds.Min.X+4, y, addr)
		y += display.GlyphHeight + 2
	}

	if y > bounds.Max.Y-2 {
		return
	}
	status := "offline"
	if n.online {
		ms := float64(n.latency) / float64(time.Millisecond)
		status = fmt.Sprintf("%s %.0fms", n.cfg.PingTarget, ms)
	} else if n.cfg.PingTarget != "" {
		status = n.cfg.PingTarget + " unreachable"
	}
	r.Text(bounds.Min.X+4, y, strings.TrimSpace(status))
}
