package sampler

import (
	"context"
	"strings"

	"github.com/rileyhilliard/ptop/internal/errors"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/net"
)

// systemReader reads host-wide counters. Swapped out in tests.
type systemReader func(ctx context.Context) (SystemSample, error)

// readSystem collects per-core CPU times, memory, and summed disk/network counters.
func readSystem(ctx context.Context) (SystemSample, error) {
	var sys SystemSample

	times, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return sys, errors.NewSampleError(err, "per-core CPU times")
	}
	sys.Cores = make([]CoreTimes, 0, len(times))
	for _, t := range times {
		sys.Cores = append(sys.Cores, coreTimes(t))
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return sys, errors.NewSampleError(err, "memory usage")
	}
	sys.MemUsed = vm.Used
	sys.MemTotal = vm.Total

	// Disk and network counters are missing on some hosts (containers,
	// sandboxes). Their absence reads as zero traffic rather than a failed tick.
	if counters, err := disk.IOCountersWithContext(ctx); err == nil {
		sys.DiskRead, sys.DiskWrite = sumDisks(counters)
	}

	if ifaces, err := net.IOCountersWithContext(ctx, true); err == nil {
		sys.NetRecv, sys.NetSent = sumInterfaces(ifaces)
	}

	return sys, nil
}

// coreTimes folds a gopsutil TimesStat into busy/total seconds.
// Guest time is already included in User, so it is not added again.
func coreTimes(t cpu.TimesStat) CoreTimes {
	total := t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
	idle := t.Idle + t.Iowait
	return CoreTimes{Busy: total - idle, Total: total}
}

// sumDisks adds up whole-device counters, skipping partitions of listed devices
// so that sda and sda1 are not counted twice.
func sumDisks(counters map[string]disk.IOCountersStat) (read, write uint64) {
	for name, c := range counters {
		if isPartition(name, counters) {
			continue
		}
		read += c.ReadBytes
		write += c.WriteBytes
	}
	return read, write
}

// isPartition reports whether name is a numbered partition of another device in the set
// (sda1 of sda, nvme0n1p2 of nvme0n1, mmcblk0p1 of mmcblk0).
func isPartition(name string, all map[string]disk.IOCountersStat) bool {
	for parent := range all {
		if parent == name || !strings.HasPrefix(name, parent) {
			continue
		}
		suffix := strings.TrimPrefix(strings.TrimPrefix(name, parent), "p")
		if suffix != "" && isDigits(suffix) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sumInterfaces adds up counters of every non-loopback interface.
func sumInterfaces(ifaces []net.IOCountersStat) (recv, sent uint64) {
	for _, iface := range ifaces {
		if isLoopback(iface.Name) {
			continue
		}
		recv += iface.BytesRecv
		sent += iface.BytesSent
	}
	return recv, sent
}

func isLoopback(name string) bool {
	return name == "lo" || strings.HasPrefix(name, "lo0") || strings.HasPrefix(name, "Loopback")
}
