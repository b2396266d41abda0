// Command analogsdk-demo exercises the supplemented internal/core.Client
// wrapper (SPEC_FULL.md §12), without crossing the cgo boundary: it
// loads every plugin under the resolved plugin search directories,
// prints each connected device, then polls the full analog buffer a
// few times.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/internal/config"
	"github.com/andrieee44/analogsdk/internal/core"
	"github.com/andrieee44/analogsdk/internal/plog"
)

const appName = "AnalogSDK"

func exitIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "analogsdk-demo:", err)
		os.Exit(1)
	}
}

func main() {
	var (
		client = core.NewClient(plog.Logger())
		dirs   = config.PluginSearchDirs(appName)
	)

	count, err := client.Initialise(dirs, true)
	exitIf(err)

	fmt.Printf("initialised with %d device(s) across %v\n", count, dirs)

	client.OnDeviceEvent(func(event analogsdk.DeviceEventType, info analogsdk.DeviceInfo) {
		fmt.Printf("event: %v device=%#x (%s %s)\n", event, info.DeviceID, info.Manufacturer, info.ProductName)
	})

	infos, err := client.ConnectedDevices()
	exitIf(err)

	for _, info := range infos {
		fmt.Printf("device %#x: %s %s (vendor %#04x product %#04x)\n",
			info.DeviceID, info.Manufacturer, info.ProductName, info.VendorID, info.ProductID)
	}

	for i := 0; i < 5; i++ {
		pairs, err := client.ReadFullBuffer(64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read_full_buffer:", err)
		} else {
			for code, value := range pairs {
				fmt.Printf("  code %#04x = %.3f\n", code, value)
			}
		}

		time.Sleep(200 * time.Millisecond)
	}

	client.Close()
}
