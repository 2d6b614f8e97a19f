package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
)

// CPUUpdateInterval is how often the desktop bar samples CPU usage.
const CPUUpdateInterval = 2 * time.Second

const cpuHistoryLen = 10

// cpuSampleMsg carries one CPU usage sample in percent.
type cpuSampleMsg float64

// sampleCPU measures CPU usage since the previous call off the UI goroutine.
func sampleCPU() tea.Msg {
	percent, err := cpu.Percent(0, false)
	if err != nil || len(percent) == 0 {
		return cpuSampleMsg(0)
	}
	return cpuSampleMsg(percent[0])
}

// recordCPU appends a sample to the history shown in the desktop bar.
func (m *Model) recordCPU(usage float64) {
	usage = min(max(usage, 0), 100)
	if len(m.CPUHistory) >= cpuHistoryLen {
		m.CPUHistory = m.CPUHistory[1:]
	}
	m.CPUHistory = append(m.CPUHistory, usage)
}

// GetCPUGraph returns a fixed-width string with a CPU bar graph and the
// current percentage.
func (m *Model) GetCPUGraph() string {
	current := 0.0
	if len(m.CPUHistory) > 0 {
		current = m.CPUHistory[len(m.CPUHistory)-1]
	}

	bars := []rune("▁▂▃▄▅▆▇█")
	var graph strings.Builder
	graph.WriteString(strings.Repeat(" ", cpuHistoryLen-len(m.CPUHistory)))
	for _, usage := range m.CPUHistory {
		graph.WriteRune(bars[min(int(usage/12.5), len(bars)-1)])
	}
	return fmt.Sprintf("CPU:%s %3.0f%%", graph.String(), current)
}
