//go:build !linux

package web

import (
	"errors"
	"net"
	"time"
)

func latency(net.Conn) (time.Duration, error) {
	return 0, errors.New("web: latency is only measured on linux")
}
