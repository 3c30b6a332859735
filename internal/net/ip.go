package net

import (
	"log"
	"net"
)

// GetOutgoingIP returns the address viewers on the LAN should dial.
// Dialing UDP sends no packets; it only asks the kernel for a route.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		addrs, err := net.InterfaceAddrs()
		if err != nil {
			return "", err
		}
		return pickLANAddr(addrs), nil
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

// pickLANAddr prefers a private IPv4 address, then any non-loopback IPv4,
// then loopback.
func pickLANAddr(addrs []net.Addr) string {
	var fallback string
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		if ipnet.IP.IsPrivate() {
			return ipnet.IP.String()
		}
		if fallback == "" {
			fallback = ipnet.IP.String()
		}
	}
	if fallback != "" {
		return fallback
	}
	log.Println("[SHARE] No LAN address found, share link uses loopback")
	return "127.0.0.1"
}
