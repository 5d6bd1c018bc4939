package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// InitResourceLimits raises the open-file limit so ffmpeg children and
// asset fetches do not starve on default macOS/Linux limits.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not raise file limit: %v", err)
	} else {
		fmt.Printf("[*] Open file limit raised to %d\n", rLimit.Cur)
	}
}

// GetAudioDuration reads a media file's duration via ffprobe.
func GetAudioDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, err
	}
	return duration, nil
}

// GetBestH264Encoder probes the local ffmpeg build for hardware H.264
// support, preferring VideoToolbox, then NVENC, then software x264.
func GetBestH264Encoder() string {
	hardware := []string{"h264_videotoolbox", "h264_nvenc"}

	cmd := exec.Command("ffmpeg", "-encoders")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range hardware {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// ProcessStats is a point-in-time snapshot of this process, attached to
// the capture performance report.
type ProcessStats struct {
	RSSMegabytes float64
	CPUPercent   float64
	LogicalCPUs  int
}

// SnapshotProcess collects memory and CPU usage of the current process.
func SnapshotProcess() (ProcessStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, err
	}

	stats := ProcessStats{}
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		stats.RSSMegabytes = float64(mem.RSS) / (1024 * 1024)
	}
	if pct, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = pct
	}
	if n, err := cpu.Counts(true); err == nil {
		stats.LogicalCPUs = n
	}
	return stats, nil
}
