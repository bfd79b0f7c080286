package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is used in structure padding to prevent false sharing
// between counters that are written by different goroutines.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
