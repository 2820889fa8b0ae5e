//go:build !deadlock
// +build !deadlock

package syncutils

import "sync"

type Mutex struct {
	sync.Mutex
}
