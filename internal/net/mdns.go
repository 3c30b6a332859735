package net

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_sketchboard._tcp"

// Advertise announces a snapshot hub on the local network.
// Call Shutdown on the returned server to withdraw it.
func Advertise(port int, boardID string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,        // instance name
		serviceType, // _sketchboard._tcp
		"",          // domain, defaults to .local
		"",          // host name, defaults to the OS host name
		port,
		nil, // IPs are auto-detected
		[]string{"SketchBoard", "board=" + boardID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for advertised hubs for the given time and returns their
// share links.
func Browse(timeout time.Duration) ([]string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	var (
		links []string
		wg    sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			links = append(links, ShareLink(e.AddrV4.String(), e.Port))
		}
	}()

	err := mdns.Query(&mdns.QueryParam{
		Service:     serviceType,
		Domain:      "local",
		Timeout:     timeout,
		Entries:     entries,
		DisableIPv6: true,
	})
	close(entries)
	wg.Wait()
	if err != nil {
		return nil, fmt.Errorf("browse %s: %w", serviceType, err)
	}
	return links, nil
}
