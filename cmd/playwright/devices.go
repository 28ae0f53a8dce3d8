package main

import (
	"flag"
	"fmt"

	"github.com/rr13k/playwright/pkg/launcher"
	"github.com/rr13k/playwright/pkg/logging"
)

// runDevicesCommand lists every device profile the engine knows about, with
// the attributes that matter when picking one for -device.
func runDevicesCommand(args []string) error {
	fs := flag.NewFlagSet("devices", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, _ := logging.NewLogger("cli")
	defer log.Close()

	l, err := launcher.New(log)
	if err != nil {
		return err
	}
	defer l.Close()

	devices := l.Devices()
	names := devices.Names()

	fmt.Println(headingStyle.Render(fmt.Sprintf("%d device profiles", len(names))))
	for _, name := range names {
		profile, _ := devices.Lookup(name)
		fmt.Printf("  %s %s\n", nameStyle.Render(name), detailStyle.Render(describeDevice(profile)))
	}
	fmt.Println()
	fmt.Println(detailStyle.Render("Use with: playwright open -device \"<name>\" <url>"))
	return nil
}

func describeDevice(profile launcher.DeviceProfile) string {
	detail := ""
	if profile.Viewport != nil {
		detail = fmt.Sprintf("%dx%d", profile.Viewport.Width, profile.Viewport.Height)
	}
	if profile.DeviceScaleFactor != 0 {
		detail += fmt.Sprintf(" @%gx", profile.DeviceScaleFactor)
	}
	if profile.DefaultBrowser != "" {
		detail += " " + profile.DefaultBrowser
	}
	if profile.IsMobile {
		detail += " mobile"
	}
	return detail
}
